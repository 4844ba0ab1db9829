package service

import (
	"encoding/json"
	"testing"

	"examprep_backend/internal/model"
	"examprep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTemplate(kind model.TemplateKind, text, solution string, params map[string]model.ParamSpec) *model.QuestionTemplate {
	raw, _ := json.Marshal(params)
	return &model.QuestionTemplate{
		Kind:             kind,
		TemplateText:     text,
		SolutionTemplate: solution,
		AnswerType:       model.AnswerNumeric,
		Parameters:       raw,
	}
}

func fixedParam(v string) model.ParamSpec {
	return model.ParamSpec{Value: &v}
}

func TestSampleRangeStaysInBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := sampleRange(2, 9)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 9)
	}
	assert.Equal(t, 5, sampleRange(5, 5))
}

func TestGenerateMagnitude(t *testing.T) {
	tpl := buildTemplate(model.KindMagnitude,
		"求向量 ({a}, {b}) 的模",
		"√({a2}+{b2}) = {answer}",
		map[string]model.ParamSpec{
			"a": {Min: 3, Max: 3},
			"b": {Min: 4, Max: 4},
		})

	q, err := Generate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "5", q.CorrectAnswer)
	assert.Equal(t, "求向量 (3, 4) 的模", q.QuestionText)
	assert.Equal(t, "√(9+16) = 5", q.SolutionSteps)
	assert.Equal(t, map[string]int{"a": 3, "b": 4}, q.Parameters)
}

func TestGenerateDotProduct(t *testing.T) {
	tpl := buildTemplate(model.KindDotProduct,
		"({a1},{a2})·({b1},{b2}) = ?",
		"{p1} + {p2} = {answer}",
		map[string]model.ParamSpec{
			"a1": {Min: 2, Max: 2},
			"a2": {Min: 3, Max: 3},
			"b1": {Min: 4, Max: 4},
			"b2": {Min: 5, Max: 5},
		})

	q, err := Generate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "23", q.CorrectAnswer)
	assert.Equal(t, "(2,3)·(4,5) = ?", q.QuestionText)
	assert.Equal(t, "8 + 15 = 23", q.SolutionSteps)
}

// {a} 不应吃掉 {a2} 的前缀：替换必须优先匹配更长的键
func TestSubstituteLongestKeyFirst(t *testing.T) {
	out := substitutePlaceholders("{a2} vs {a} vs {a2}", map[string]string{
		"a":  "1",
		"a2": "42",
	})
	assert.Equal(t, "42 vs 1 vs 42", out)
}

func TestSubstituteUnknownPlaceholderKept(t *testing.T) {
	out := substitutePlaceholders("{a} and {missing}", map[string]string{"a": "7"})
	assert.Equal(t, "7 and {missing}", out)
}

func TestGenerateVectorAngleParallel(t *testing.T) {
	// 平行向量：cos 在浮点下可能略大于 1，结果仍应为 0 度而非 NaN
	tpl := buildTemplate(model.KindVectorAngle,
		"向量 ({a1},{a2}) 与 ({b1},{b2}) 的夹角",
		"{answer}°",
		map[string]model.ParamSpec{
			"a1": {Min: 1, Max: 1},
			"a2": {Min: 7, Max: 7},
			"b1": {Min: 2, Max: 2},
			"b2": {Min: 14, Max: 14},
		})

	q, err := Generate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "0", q.CorrectAnswer)
}

func TestGenerateVectorAnglePerpendicular(t *testing.T) {
	tpl := buildTemplate(model.KindVectorAngle, "{answer}", "{answer}",
		map[string]model.ParamSpec{
			"a1": {Min: 1, Max: 1},
			"a2": {Min: 0, Max: 0},
			"b1": {Min: 0, Max: 0},
			"b2": {Min: 3, Max: 3},
		})

	q, err := Generate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "90", q.CorrectAnswer)
}

func TestGeneratePlaneDistance(t *testing.T) {
	// 平面 2y=d，点 (x,y,z)：|2*4-2|/2 = 3
	tpl := buildTemplate(model.KindPlaneDistance, "{answer}", "{num}/√(a²+b²+c²)",
		map[string]model.ParamSpec{
			"a": {Min: 0, Max: 0},
			"b": {Min: 2, Max: 2},
			"c": {Min: 0, Max: 0},
			"d": {Min: 2, Max: 2},
			"x": {Min: 9, Max: 9},
			"y": {Min: 4, Max: 4},
			"z": {Min: 1, Max: 1},
		})

	q, err := Generate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "3", q.CorrectAnswer)
}

func TestGenerateAccelerationRounded(t *testing.T) {
	tpl := buildTemplate(model.KindAcceleration, "F={f}N m={m}kg", "{answer} m/s²",
		map[string]model.ParamSpec{
			"f": {Min: 10, Max: 10},
			"m": {Min: 3, Max: 3},
		})

	q, err := Generate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "3.33", q.CorrectAnswer)
}

func TestGeneratePowerRule(t *testing.T) {
	tpl := buildTemplate(model.KindPowerRule,
		"d/dx {a}x^{n}", "{answer}x^{nm1}",
		map[string]model.ParamSpec{
			"a": {Min: 3, Max: 3},
			"n": {Min: 4, Max: 4},
		})

	q, err := Generate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "12", q.CorrectAnswer)
	assert.Equal(t, "12x^3", q.SolutionSteps)
}

func TestGenerateFixedAnswerFallback(t *testing.T) {
	tpl := buildTemplate(model.KindFixed,
		"sin²x + cos²x = ?", "恒等式，答案为 {answer}",
		map[string]model.ParamSpec{
			"answer": fixedParam("1"),
		})

	q, err := Generate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "1", q.CorrectAnswer)
	assert.Equal(t, "恒等式，答案为 1", q.SolutionSteps)
}

func TestGenerateNoAnswerLeftEmpty(t *testing.T) {
	tpl := buildTemplate(model.KindFixed, "无解模板", "无",
		map[string]model.ParamSpec{})

	q, err := Generate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "", q.CorrectAnswer)
}

func TestGenerateBadParametersJSON(t *testing.T) {
	tpl := &model.QuestionTemplate{
		Kind:       model.KindIntegral,
		Parameters: json.RawMessage(`{not json`),
	}
	_, err := Generate(tpl)
	assert.Error(t, err)
}

func TestValidateTemplate(t *testing.T) {
	solvable := buildTemplate(model.KindIntegral, "q", "s",
		map[string]model.ParamSpec{
			"a": {Min: 1, Max: 5},
			"b": {Min: 1, Max: 5},
		})
	assert.NoError(t, ValidateTemplate(solvable))

	// 公式所需参数缺失且无固定答案
	missing := buildTemplate(model.KindIntegral, "q", "s",
		map[string]model.ParamSpec{
			"a": {Min: 1, Max: 5},
		})
	assert.ErrorIs(t, ValidateTemplate(missing), util.ErrTemplateUnsolvable)

	// 固定答案可以兜底
	withFixed := buildTemplate(model.KindFixed, "q", "s",
		map[string]model.ParamSpec{
			"answer": fixedParam("42"),
		})
	assert.NoError(t, ValidateTemplate(withFixed))

	// 区间颠倒
	inverted := buildTemplate(model.KindVelocity, "q", "s",
		map[string]model.ParamSpec{
			"a": {Min: 9, Max: 1},
			"t": {Min: 1, Max: 3},
		})
	assert.ErrorIs(t, ValidateTemplate(inverted), util.ErrTemplateUnsolvable)
}

// 中点探测发现不了区间内的个别坏点：
// 除数区间跨 0 时运行期可能采到 0，保存即拒绝
func TestValidateTemplateDivisorRangeSpanningZero(t *testing.T) {
	acceleration := buildTemplate(model.KindAcceleration, "q", "s",
		map[string]model.ParamSpec{
			"f": {Min: 10, Max: 20},
			"m": {Min: -1, Max: 3},
		})
	assert.ErrorIs(t, ValidateTemplate(acceleration), util.ErrTemplateUnsolvable)

	molarity := buildTemplate(model.KindMolarity, "q", "s",
		map[string]model.ParamSpec{
			"g":  {Min: 1, Max: 50},
			"mm": {Min: 0, Max: 18},
		})
	assert.ErrorIs(t, ValidateTemplate(molarity), util.ErrTemplateUnsolvable)

	// 不含 0 的除数区间正常通过
	safe := buildTemplate(model.KindAcceleration, "q", "s",
		map[string]model.ParamSpec{
			"f": {Min: 10, Max: 20},
			"m": {Min: 1, Max: 3},
		})
	assert.NoError(t, ValidateTemplate(safe))

	// 其它类型不受除数约束
	negatives := buildTemplate(model.KindDotProduct, "q", "s",
		map[string]model.ParamSpec{
			"a1": {Min: -3, Max: 3},
			"a2": {Min: -3, Max: 3},
			"b1": {Min: -3, Max: 3},
			"b2": {Min: -3, Max: 3},
		})
	assert.NoError(t, ValidateTemplate(negatives))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "5", formatNumber(5.0))
	assert.Equal(t, "-3", formatNumber(-3.0))
	assert.Equal(t, "3.33", formatNumber(3.33))
	assert.Equal(t, "0.5", formatNumber(0.5))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.33, round2(10.0/3.0))
	assert.Equal(t, 0.13, round2(0.125))
	assert.Equal(t, -0.13, round2(-0.125))
}
