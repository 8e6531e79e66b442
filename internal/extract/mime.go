package extract

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

var extTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// DetectType guesses a MIME type from the file name's extension, then from
// the content. Content sniffing alone reports a .docx as application/zip.
func DetectType(name string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mt := extTypes[ext]; mt != "" {
		return mt
	}
	if ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return mt
		}
	}
	return http.DetectContentType(data)
}
