package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"examprep_backend/internal/model"
	"examprep_backend/internal/repository"
	"examprep_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// overviewCacheTTL 进度总览缓存时长，进度写入时主动失效
const overviewCacheTTL = 5 * time.Minute

func overviewCacheKey(userID uint) string {
	return fmt.Sprintf("examprep:progress:overview:%d", userID)
}

// invalidateOverviewCache 进度写入后清掉该用户的总览缓存
func invalidateOverviewCache(ctx context.Context, rdb *redis.Client, userID uint) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, overviewCacheKey(userID)).Err(); err != nil {
		logger.Log.Warn("清除进度缓存失败", zap.Uint("userID", userID), zap.Error(err))
	}
}

type ProgressService struct {
	TopicRepo    *repository.TopicRepository
	CardRepo     *repository.LearnCardRepository
	TemplateRepo *repository.QuestionTemplateRepository
	ProgressRepo *repository.ProgressRepository
	Redis        *redis.Client
}

func NewProgressService(
	topicRepo *repository.TopicRepository,
	cardRepo *repository.LearnCardRepository,
	templateRepo *repository.QuestionTemplateRepository,
	progressRepo *repository.ProgressRepository,
	rdb *redis.Client,
) *ProgressService {
	return &ProgressService{
		TopicRepo:    topicRepo,
		CardRepo:     cardRepo,
		TemplateRepo: templateRepo,
		ProgressRepo: progressRepo,
		Redis:        rdb,
	}
}

// TopicProgress 单个主题的进度
type TopicProgress struct {
	TopicID         uint    `json:"topicId"`
	TopicName       string  `json:"topicName"`
	LearnPercent    float64 `json:"learnPercent"`
	PracticePercent float64 `json:"practicePercent"`
	TotalPercent    float64 `json:"totalPercent"`
}

// ProgressOverview 所有主题的进度加总
type ProgressOverview struct {
	Topics  []TopicProgress `json:"topics"`
	Overall float64         `json:"overall"`
}

// ForTopic 计算用户在单个主题下的进度
func (s *ProgressService) ForTopic(userID uint, topic *model.Topic) (*TopicProgress, error) {
	cardCount, err := s.CardRepo.CountByTopic(topic.ID)
	if err != nil {
		return nil, err
	}
	templateCount, err := s.TemplateRepo.CountByTopic(topic.ID)
	if err != nil {
		return nil, err
	}

	learnRows, err := s.ProgressRepo.FindLearnByTopic(userID, topic.ID)
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, row := range learnRows {
		if row.Completed {
			completed++
		}
	}

	practiceRows, err := s.ProgressRepo.FindPracticeByTopic(userID, topic.ID)
	if err != nil {
		return nil, err
	}
	mastered := 0
	for _, row := range practiceRows {
		if row.Correct {
			mastered++
		}
	}

	progress := computeTopicProgress(completed, int(cardCount), mastered, int(templateCount))
	progress.TopicID = topic.ID
	progress.TopicName = topic.Name
	return &progress, nil
}

// Overview 聚合所有主题的进度，结果写入 redis 缓存。
// 空主题按 0% 计入总平均，不从分母中剔除
func (s *ProgressService) Overview(ctx context.Context, userID uint) (*ProgressOverview, error) {
	if cached := s.readCache(ctx, userID); cached != nil {
		return cached, nil
	}

	topics, err := s.TopicRepo.FindAll()
	if err != nil {
		return nil, err
	}

	overview := &ProgressOverview{Topics: make([]TopicProgress, 0, len(topics))}
	sum := 0.0
	for i := range topics {
		progress, err := s.ForTopic(userID, &topics[i])
		if err != nil {
			return nil, err
		}
		overview.Topics = append(overview.Topics, *progress)
		sum += progress.TotalPercent
	}
	if len(topics) > 0 {
		overview.Overall = round2(sum / float64(len(topics)))
	}

	s.writeCache(ctx, userID, overview)
	return overview, nil
}

func (s *ProgressService) readCache(ctx context.Context, userID uint) *ProgressOverview {
	if s.Redis == nil {
		return nil
	}
	raw, err := s.Redis.Get(ctx, overviewCacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var overview ProgressOverview
	if err := json.Unmarshal(raw, &overview); err != nil {
		return nil
	}
	return &overview
}

func (s *ProgressService) writeCache(ctx context.Context, userID uint, overview *ProgressOverview) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(overview)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, overviewCacheKey(userID), raw, overviewCacheTTL).Err(); err != nil {
		logger.Log.Warn("写入进度缓存失败", zap.Uint("userID", userID), zap.Error(err))
	}
}

// computeTopicProgress 学习/练习各自取完成比例，总进度取两者均值。
// 没有内容的维度记 0，避免除零产生 NaN
func computeTopicProgress(cardsDone, cardsTotal, templatesDone, templatesTotal int) TopicProgress {
	progress := TopicProgress{}
	if cardsTotal > 0 {
		progress.LearnPercent = round2(float64(cardsDone) / float64(cardsTotal) * 100)
	}
	if templatesTotal > 0 {
		progress.PracticePercent = round2(float64(templatesDone) / float64(templatesTotal) * 100)
	}
	progress.TotalPercent = round2((progress.LearnPercent + progress.PracticePercent) / 2)
	return progress
}
