package service

import (
	"examprep_backend/internal/model"
	"examprep_backend/internal/util"
	"math"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// GeneratedQuestion 一次出题结果：渲染后的题面/解析、
// 答案字符串和原始采样参数（供"再出一题"复用模板）
type GeneratedQuestion struct {
	QuestionText  string         `json:"questionText"`
	SolutionSteps string         `json:"solutionSteps"`
	CorrectAnswer string         `json:"correctAnswer"`
	Parameters    map[string]int `json:"parameters"`
}

// deriveFunc 按模板类型从采样参数推导 answer 及解析中间值。
// 所需参数缺失时返回 ok=false，该模板退回固定答案
type deriveFunc func(p map[string]int) (map[string]float64, bool)

var derivations = map[model.TemplateKind]deriveFunc{
	model.KindPowerRule: func(p map[string]int) (map[string]float64, bool) {
		a, okA := p["a"]
		n, okN := p["n"]
		if !okA || !okN {
			return nil, false
		}
		return map[string]float64{
			"answer": float64(a * n),
			"nm1":    float64(n - 1),
		}, true
	},
	model.KindIntegral: func(p map[string]int) (map[string]float64, bool) {
		a, okA := p["a"]
		b, okB := p["b"]
		if !okA || !okB {
			return nil, false
		}
		return map[string]float64{
			"answer": float64(a*b*b) / 2,
		}, true
	},
	model.KindMagnitude: func(p map[string]int) (map[string]float64, bool) {
		a, okA := p["a"]
		b, okB := p["b"]
		if !okA || !okB {
			return nil, false
		}
		a2 := float64(a * a)
		b2 := float64(b * b)
		return map[string]float64{
			"a2":     a2,
			"b2":     b2,
			"answer": round2(math.Sqrt(a2 + b2)),
		}, true
	},
	model.KindLimit: func(p map[string]int) (map[string]float64, bool) {
		a2, okA2 := p["a2"]
		a, okA := p["a"]
		b, okB := p["b"]
		if !okA2 || !okA || !okB {
			return nil, false
		}
		return map[string]float64{
			"answer": float64(a2*a + b),
		}, true
	},
	model.KindDotProduct: func(p map[string]int) (map[string]float64, bool) {
		a1, ok1 := p["a1"]
		a2, ok2 := p["a2"]
		b1, ok3 := p["b1"]
		b2, ok4 := p["b2"]
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, false
		}
		p1 := float64(a1 * b1)
		p2 := float64(a2 * b2)
		return map[string]float64{
			"p1":     p1,
			"p2":     p2,
			"answer": p1 + p2,
		}, true
	},
	model.KindVectorAngle: func(p map[string]int) (map[string]float64, bool) {
		a1, ok1 := p["a1"]
		a2, ok2 := p["a2"]
		b1, ok3 := p["b1"]
		b2, ok4 := p["b2"]
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, false
		}
		dot := float64(a1*b1 + a2*b2)
		na := math.Sqrt(float64(a1*a1 + a2*a2))
		nb := math.Sqrt(float64(b1*b1 + b2*b2))
		// 浮点误差可能让余弦略超出 [-1,1]，截断避免 NaN
		cos := dot / (na * nb)
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		return map[string]float64{
			"dot":    dot,
			"answer": round2(math.Acos(cos) * 180 / math.Pi),
		}, true
	},
	model.KindPlaneDistance: func(p map[string]int) (map[string]float64, bool) {
		a, okA := p["a"]
		b, okB := p["b"]
		c, okC := p["c"]
		d, okD := p["d"]
		x, okX := p["x"]
		y, okY := p["y"]
		z, okZ := p["z"]
		if !okA || !okB || !okC || !okD || !okX || !okY || !okZ {
			return nil, false
		}
		num := math.Abs(float64(a*x + b*y + c*z - d))
		norm := math.Sqrt(float64(a*a + b*b + c*c))
		return map[string]float64{
			"num":    num,
			"answer": round2(num / norm),
		}, true
	},
	model.KindAcceleration: func(p map[string]int) (map[string]float64, bool) {
		m, okM := p["m"]
		f, okF := p["f"]
		if !okM || !okF || m == 0 {
			return nil, false
		}
		return map[string]float64{
			"answer": round2(float64(f) / float64(m)),
		}, true
	},
	model.KindVelocity: func(p map[string]int) (map[string]float64, bool) {
		a, okA := p["a"]
		t, okT := p["t"]
		if !okA || !okT {
			return nil, false
		}
		return map[string]float64{
			"answer": float64(a * t),
		}, true
	},
	model.KindMassNumber: func(p map[string]int) (map[string]float64, bool) {
		pr, okP := p["p"]
		n, okN := p["n"]
		if !okP || !okN {
			return nil, false
		}
		return map[string]float64{
			"answer": float64(pr + n),
		}, true
	},
	model.KindMolarity: func(p map[string]int) (map[string]float64, bool) {
		g, okG := p["g"]
		mm, okMM := p["mm"]
		if !okG || !okMM || mm == 0 {
			return nil, false
		}
		return map[string]float64{
			"answer": round2(float64(g) / float64(mm)),
		}, true
	},
	model.KindLinearOutput: func(p map[string]int) (map[string]float64, bool) {
		n, okN := p["n"]
		a, okA := p["a"]
		if !okN || !okA {
			return nil, false
		}
		return map[string]float64{
			"answer": float64(n * a),
		}, true
	},
}

// Generate 采样参数、套用模板类型对应的公式并渲染题面与解析。
// 采样故意不可设种子：同一模板每次练习应得到不同题目
func Generate(template *model.QuestionTemplate) (*GeneratedQuestion, error) {
	specs, err := template.ParamSpecs()
	if err != nil {
		return nil, err
	}

	params := make(map[string]int)
	fixed := make(map[string]string)
	for name, spec := range specs {
		if spec.Value != nil {
			fixed[name] = *spec.Value
			continue
		}
		params[name] = sampleRange(spec.Min, spec.Max)
	}

	values := make(map[string]string, len(params))
	for k, v := range params {
		values[k] = strconv.Itoa(v)
	}

	if fn, ok := derivations[template.Kind]; ok {
		if derived, matched := fn(params); matched {
			for k, v := range derived {
				values[k] = formatNumber(v)
			}
		}
	}

	// 公式未给出答案时退回声明的固定答案；
	// 两者都没有则答案留空（内容作者负责校验，见 ValidateTemplate）
	if _, ok := values["answer"]; !ok {
		if fa, declared := fixed["answer"]; declared {
			values["answer"] = fa
		}
	}
	for k, v := range fixed {
		if _, exists := values[k]; !exists {
			values[k] = v
		}
	}

	return &GeneratedQuestion{
		QuestionText:  substitutePlaceholders(template.TemplateText, values),
		SolutionSteps: substitutePlaceholders(template.SolutionTemplate, values),
		CorrectAnswer: values["answer"],
		Parameters:    params,
	}, nil
}

// divisorParams 公式里作除数的参数，其采样区间不得覆盖 0
var divisorParams = map[model.TemplateKind]string{
	model.KindAcceleration: "m",
	model.KindMolarity:     "mm",
}

// ValidateTemplate 内容保存时校验：类型必须可解出答案或声明固定答案。
// 用各区间中点跑一遍公式，避免把解不出的模板放给学生
func ValidateTemplate(template *model.QuestionTemplate) error {
	specs, err := template.ParamSpecs()
	if err != nil {
		return err
	}

	divisor := divisorParams[template.Kind]

	params := make(map[string]int)
	hasFixedAnswer := false
	for name, spec := range specs {
		if spec.Value != nil {
			if name == "answer" {
				hasFixedAnswer = true
			}
			continue
		}
		if spec.Max < spec.Min {
			return util.ErrTemplateUnsolvable
		}
		// 中点探测只覆盖区间里的一个点；除数区间含 0 时
		// 运行期仍可能采到 0，这里直接拒绝
		if name == divisor && spec.Min <= 0 && spec.Max >= 0 {
			return util.ErrTemplateUnsolvable
		}
		params[name] = (spec.Min + spec.Max) / 2
	}

	if fn, ok := derivations[template.Kind]; ok {
		if _, matched := fn(params); matched {
			return nil
		}
	}
	if hasFixedAnswer {
		return nil
	}
	return util.ErrTemplateUnsolvable
}

// sampleRange [min,max] 闭区间均匀取整
func sampleRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
}

// round2 保留两位小数，四舍五入远离零
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatNumber 整数值不带小数点，其余去掉多余的尾零
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// substitutePlaceholders 单次遍历替换所有 {key} 占位符。
// 所有键合成一个正则、按长度降序排列，避免 {a} 吃掉 {a2} 的前缀
func substitutePlaceholders(text string, values map[string]string) string {
	if len(values) == 0 {
		return text
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, regexp.QuoteMeta(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pattern := regexp.MustCompile(`\{(` + strings.Join(keys, "|") + `)\}`)
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		return values[name]
	})
}
