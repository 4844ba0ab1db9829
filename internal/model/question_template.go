package model

import "encoding/json"

type AnswerType string

const (
	AnswerNumeric AnswerType = "numeric"
	AnswerText    AnswerType = "text"
)

// TemplateKind 显式声明模板对应的求解公式，
// 取代旧版按题面子串猜测公式的做法
type TemplateKind string

const (
	KindPowerRule     TemplateKind = "power_rule"      // 幂函数求导 a*x^n -> a*n
	KindIntegral      TemplateKind = "integral"        // ∫0..b ax dx = a*b^2/2
	KindMagnitude     TemplateKind = "magnitude"       // |(a,b)| = sqrt(a^2+b^2)
	KindLimit         TemplateKind = "limit"           // 多项式极限 a2*a+b
	KindDotProduct    TemplateKind = "dot_product"     // a1*b1 + a2*b2
	KindVectorAngle   TemplateKind = "vector_angle"    // 向量夹角（度）
	KindPlaneDistance TemplateKind = "plane_distance"  // 点到平面距离
	KindAcceleration  TemplateKind = "acceleration"    // F=ma -> a = f/m
	KindVelocity      TemplateKind = "velocity"        // v = a*t
	KindMassNumber    TemplateKind = "mass_number"     // 质量数 p+n
	KindMolarity      TemplateKind = "molarity"        // n = g/mm
	KindLinearOutput  TemplateKind = "linear_output"   // 线性输出 n*a
	KindFixed         TemplateKind = "fixed"           // 仅使用固定答案参数
)

// ParamSpec 单个占位符的取值规则：
// Value 非空时为固定值（不参与采样），否则在 [Min,Max] 闭区间内均匀取整
type ParamSpec struct {
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Value *string `json:"value,omitempty"`
}

// QuestionTemplate 出题模板，题面/解析中的 {name} 占位符
// 由参数采样值和公式派生值填充
// swagger:model QuestionTemplate
type QuestionTemplate struct {
	BaseModel
	TopicID          uint            `gorm:"index;not null" json:"topicId"`
	Kind             TemplateKind    `gorm:"size:32;not null" json:"kind"`
	TemplateText     string          `gorm:"type:text;not null" json:"templateText"`
	SolutionTemplate string          `gorm:"type:text;not null" json:"solutionTemplate"`
	AnswerType       AnswerType      `gorm:"size:16;default:'numeric'" json:"answerType"`
	Parameters       json.RawMessage `gorm:"type:json;not null" json:"parameters"` // map[string]ParamSpec
}

func (QuestionTemplate) TableName() string {
	return "question_templates"
}

// ParamSpecs 解析 Parameters 字段
func (t *QuestionTemplate) ParamSpecs() (map[string]ParamSpec, error) {
	specs := make(map[string]ParamSpec)
	if len(t.Parameters) == 0 {
		return specs, nil
	}
	if err := json.Unmarshal(t.Parameters, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}
