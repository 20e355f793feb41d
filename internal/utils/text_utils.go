package utils

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor normalizes inbound content before it reaches the evaluator.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor.
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{logger: logger}
}

// Truncate caps text at maxBytes without splitting a UTF-8 sequence.
// maxBytes <= 0 disables the cap.
func (tp *TextProcessor) Truncate(text string, maxBytes int) string {
	if maxBytes <= 0 || len(text) <= maxBytes {
		return text
	}

	truncated := text[:maxBytes]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	if tp.logger != nil {
		tp.logger.Debug("Content truncated",
			zap.Int("original_size", len(text)),
			zap.Int("truncated_size", len(truncated)))
	}

	return truncated
}

// Sanitize drops invalid UTF-8 sequences from text.
func (tp *TextProcessor) Sanitize(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	return string(result)
}

// Process truncates and sanitizes in one step.
func (tp *TextProcessor) Process(text string, maxBytes int) string {
	return tp.Sanitize(tp.Truncate(text, maxBytes))
}

// Preview shortens text to at most n runes for log and console output.
func (tp *TextProcessor) Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
