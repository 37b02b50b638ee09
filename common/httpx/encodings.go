package httpx

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Decodegbk converts GBK to UTF-8
func Decodegbk(s []byte) ([]byte, error) {
	I := bytes.NewReader(s)
	O := transform.NewReader(I, simplifiedchinese.GBK.NewDecoder())
	d, e := io.ReadAll(O)
	if e != nil {
		return nil, e
	}
	return d, nil
}

// DecodeBody converts a response body to UTF-8 using the charset declared in
// the content type or the document itself. Undeclared non UTF-8 bodies are
// tried as GBK before falling back to the raw bytes.
func DecodeBody(data []byte, contentType string) string {
	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if name == "utf-8" || (!certain && utf8.Valid(data)) {
		return string(data)
	}
	// nothing declared, windows-1252 is only the sniffing default
	if !certain && name == "windows-1252" {
		if decoded, err := Decodegbk(data); err == nil {
			return string(decoded)
		}
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
