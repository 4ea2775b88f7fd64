package model

import "encoding/json"

// QuestionType 题型，闭合枚举，解析器和评分器都只认这五种
type QuestionType string

const (
	TypeSingle    QuestionType = "single"    // 单选题
	TypeMultiple  QuestionType = "multiple"  // 多选题
	TypeTrueFalse QuestionType = "truefalse" // 判断题
	TypeEssay     QuestionType = "essay"     // 简答题
	TypeFill      QuestionType = "fill"      // 填空题
)

// ValidTypes 按固定顺序列出全部合法题型
var ValidTypes = []QuestionType{TypeSingle, TypeMultiple, TypeTrueFalse, TypeEssay, TypeFill}

func (t QuestionType) Valid() bool {
	for _, vt := range ValidTypes {
		if t == vt {
			return true
		}
	}
	return false
}

// Option 选择题选项，key 限定 A-F
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Question 题目记录
// swagger:model Question
type Question struct {
	BaseModel
	Type          QuestionType    `gorm:"size:20;not null;index" json:"type"`
	Title         string          `gorm:"size:255;not null" json:"title"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	Options       json.RawMessage `gorm:"type:json" json:"options"` // JSON: []Option
	CorrectAnswer string          `gorm:"type:text;not null" json:"correctAnswer"`
	Explanation   string          `gorm:"type:text" json:"explanation"`
	Difficulty    int             `gorm:"default:1" json:"difficulty"` // 1-5
	Subject       string          `gorm:"size:100;index;default:'未分类'" json:"subject"`
	Chapter       string          `gorm:"size:100" json:"chapter"`
}

func (Question) TableName() string {
	return "questions"
}

// DecodeOptions 解码选项 JSON，空值返回空切片
func (q *Question) DecodeOptions() ([]Option, error) {
	if len(q.Options) == 0 {
		return []Option{}, nil
	}
	var opts []Option
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// EncodeOptions 编码选项到 JSON，供入库
func EncodeOptions(opts []Option) (json.RawMessage, error) {
	if opts == nil {
		opts = []Option{}
	}
	return json.Marshal(opts)
}
