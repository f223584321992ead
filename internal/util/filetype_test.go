package util_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"report-web-server/internal/util"
)

func TestValidateFileType(t *testing.T) {
	assert.True(t, util.ValidateFileType("word"))
	assert.True(t, util.ValidateFileType("mp3"))

	for _, fileType := range []string{"", "pdf", "WORD", "Mp3", "docx", "audio"} {
		assert.False(t, util.ValidateFileType(fileType), fileType)
	}
}

func TestGetFileContentType(t *testing.T) {
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", util.GetFileContentType("word"))
	assert.Equal(t, "audio/mpeg", util.GetFileContentType("mp3"))
	assert.Equal(t, "application/octet-stream", util.GetFileContentType("pdf"))
}

func TestGenerateFileKey(t *testing.T) {
	wordKey := util.GenerateFileKey(42, "word")
	assert.True(t, strings.HasPrefix(wordKey, "word/42_"), wordKey)
	assert.True(t, strings.HasSuffix(wordKey, ".docx"), wordKey)

	mp3Key := util.GenerateFileKey(42, "mp3")
	assert.True(t, strings.HasPrefix(mp3Key, "audio/42_"), mp3Key)
	assert.True(t, strings.HasSuffix(mp3Key, ".mp3"), mp3Key)

	// случайный суффикс — ключи не повторяются
	assert.NotEqual(t, mp3Key, util.GenerateFileKey(42, "mp3"))
}

func TestExtractFileKey(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ключ как есть", "audio/42_1.mp3", "audio/42_1.mp3"},
		{"ключ с ведущим слэшем", "/audio/42_1.mp3", "audio/42_1.mp3"},
		{"полный URL", "https://cdn.example.com/word/1_a.docx", "word/1_a.docx"},
		{"URL с портом", "http://localhost:9000/bucket-path/audio/7_b.mp3", "bucket-path/audio/7_b.mp3"},
		{"пустая строка", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, util.ExtractFileKey(tc.in))
		})
	}
}
