package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 题库文档导入相关常量
const (
	MimePlainText = "text/plain"
	MimeWordDoc   = "application/msword"
	MimeWordDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeExcelXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	AllowedDocumentExtensions = []string{".txt", ".doc", ".docx"}
	AllowedExcelExtensions    = []string{".xlsx", ".xls"}
)
