package entity

// Sample пара изображение + аннотация с общим базовым именем
type Sample struct {
	Basename       string // ключ сопоставления
	ImagePath      string // путь к изображению
	AnnotationPath string // путь к XML
}

// FileIssue структурные ошибки одного файла аннотации
type FileIssue struct {
	Basename string   `json:"basename"`
	File     string   `json:"file"`
	Reasons  []string `json:"reasons"`
}
