package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrUsernameRegistered   = errors.New("该用户名已被注册")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrQuestionNotFound     = errors.New("题目不存在")
	ErrPaperNotFound        = errors.New("试卷不存在")
	ErrPaperNotAvailable    = errors.New("试卷不在可用时间范围内")
	ErrExamNotFound         = errors.New("考试记录不存在")
	ErrExamAlreadyFinished  = errors.New("考试已结束，不能重复提交")
	ErrFileTooLarge         = errors.New("文件大小超出限制")
	ErrUnsupportedFileType  = errors.New("不支持的文件类型")
	ErrDocumentLooksBinary  = errors.New("文件内容无法识别为文本，请转存为 .txt 或 .docx 后重试")
	ErrWrongQuestionMissing = errors.New("错题记录不存在")
)
