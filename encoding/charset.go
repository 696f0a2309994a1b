package encoding

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/nwnkit/gff/errs"
	"github.com/nwnkit/gff/format"
)

// Charset table for the Aurora engine languages. Non-localized text
// (CExoString, ResRef) uses the English charset, Windows-1252.
func charsetFor(lang format.Language) (encoding.Encoding, error) {
	switch lang {
	case format.LangEnglish, format.LangFrench, format.LangGerman,
		format.LangItalian, format.LangSpanish:
		return charmap.Windows1252, nil
	case format.LangPolish:
		return charmap.Windows1250, nil
	case format.LangKorean:
		return korean.EUCKR, nil
	case format.LangChineseTrad:
		return traditionalchinese.Big5, nil
	case format.LangChineseSimpl:
		return simplifiedchinese.GBK, nil
	case format.LangJapanese:
		return japanese.ShiftJIS, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownLanguage, uint32(lang))
	}
}

// DecodeText converts raw bytes in the language's charset to a UTF-8 string.
func DecodeText(lang format.Language, raw []byte) (string, error) {
	cs, err := charsetFor(lang)
	if err != nil {
		return "", err
	}

	out, err := cs.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", errs.ErrInvalidStringEncoding, lang, err)
	}

	return string(out), nil
}

// EncodeText converts a UTF-8 string to raw bytes in the language's charset.
// Runes the charset cannot represent yield errs.ErrInvalidStringEncoding.
func EncodeText(lang format.Language, text string) ([]byte, error) {
	cs, err := charsetFor(lang)
	if err != nil {
		return nil, err
	}

	out, err := cs.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrInvalidStringEncoding, lang, err)
	}

	return out, nil
}
