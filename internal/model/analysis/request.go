package analysis

// AnalyzeRequest 文本情绪分析请求
type AnalyzeRequest struct {
	Text string `json:"text"`
}
