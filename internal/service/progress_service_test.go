package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTopicProgress(t *testing.T) {
	p := computeTopicProgress(2, 4, 1, 2)
	assert.Equal(t, 50.0, p.LearnPercent)
	assert.Equal(t, 50.0, p.PracticePercent)
	assert.Equal(t, 50.0, p.TotalPercent)

	p = computeTopicProgress(3, 3, 0, 4)
	assert.Equal(t, 100.0, p.LearnPercent)
	assert.Equal(t, 0.0, p.PracticePercent)
	assert.Equal(t, 50.0, p.TotalPercent)

	p = computeTopicProgress(1, 3, 2, 3)
	assert.Equal(t, 33.33, p.LearnPercent)
	assert.Equal(t, 66.67, p.PracticePercent)
	assert.Equal(t, 50.0, p.TotalPercent)
}

// 没有卡片和模板的主题进度为 0，不能出现 NaN
func TestComputeTopicProgressEmptyTopic(t *testing.T) {
	p := computeTopicProgress(0, 0, 0, 0)
	assert.Equal(t, 0.0, p.LearnPercent)
	assert.Equal(t, 0.0, p.PracticePercent)
	assert.Equal(t, 0.0, p.TotalPercent)

	// 只有学习内容、没有练习模板
	p = computeTopicProgress(2, 2, 0, 0)
	assert.Equal(t, 100.0, p.LearnPercent)
	assert.Equal(t, 0.0, p.PracticePercent)
	assert.Equal(t, 50.0, p.TotalPercent)
}
