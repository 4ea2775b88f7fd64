package grader

// Tier 简答题阶梯：调整后匹配率达到 Threshold 时按 Fraction 比例给分
type Tier struct {
	Threshold float64 `mapstructure:"threshold" json:"threshold"`
	Fraction  float64 `mapstructure:"fraction" json:"fraction"`
	Correct   bool    `mapstructure:"correct" json:"correct"`
}

// Policy 评分策略。简答题的权重和阶梯阈值没有公认的推导来源，
// 按可配置策略表处理，默认值沿用线上运行多年的那组常数。
type Policy struct {
	// 试卷未给题目配分值时的缺省满分
	DefaultScore float64 `mapstructure:"default_score" json:"defaultScore"`

	// 简答题最短有效作答字符数，低于此直接零分
	MinEssayLength int `mapstructure:"min_essay_length" json:"minEssayLength"`

	// 关键词数量匹配率与长度匹配率的加权
	CountWeight  float64 `mapstructure:"count_weight" json:"countWeight"`
	LengthWeight float64 `mapstructure:"length_weight" json:"lengthWeight"`

	// 作答长度与参考答案长度之比的合理性惩罚
	ShortRatio   float64 `mapstructure:"short_ratio" json:"shortRatio"`
	ShortPenalty float64 `mapstructure:"short_penalty" json:"shortPenalty"`
	LongRatio    float64 `mapstructure:"long_ratio" json:"longRatio"`
	LongPenalty  float64 `mapstructure:"long_penalty" json:"longPenalty"`

	// 阶梯按 Threshold 降序排列，首个命中生效
	Tiers []Tier `mapstructure:"tiers" json:"tiers"`
}

// DefaultPolicy 线上沿用的固定常数
func DefaultPolicy() Policy {
	return Policy{
		DefaultScore:   5,
		MinEssayLength: 5,
		CountWeight:    0.6,
		LengthWeight:   0.4,
		ShortRatio:     0.2,
		ShortPenalty:   0.5,
		LongRatio:      3,
		LongPenalty:    0.8,
		Tiers: []Tier{
			{Threshold: 0.7, Fraction: 1.0, Correct: true},
			{Threshold: 0.5, Fraction: 0.8, Correct: true},
			{Threshold: 0.35, Fraction: 0.6, Correct: false},
			{Threshold: 0.2, Fraction: 0.3, Correct: false},
		},
	}
}

// normalized 补全零值字段，保证部分覆盖的配置也能用
func (p Policy) normalized() Policy {
	def := DefaultPolicy()
	if p.DefaultScore <= 0 {
		p.DefaultScore = def.DefaultScore
	}
	if p.MinEssayLength <= 0 {
		p.MinEssayLength = def.MinEssayLength
	}
	if p.CountWeight <= 0 && p.LengthWeight <= 0 {
		p.CountWeight = def.CountWeight
		p.LengthWeight = def.LengthWeight
	}
	if p.ShortRatio <= 0 {
		p.ShortRatio = def.ShortRatio
		p.ShortPenalty = def.ShortPenalty
	}
	if p.LongRatio <= 0 {
		p.LongRatio = def.LongRatio
		p.LongPenalty = def.LongPenalty
	}
	if len(p.Tiers) == 0 {
		p.Tiers = def.Tiers
	}
	return p
}
