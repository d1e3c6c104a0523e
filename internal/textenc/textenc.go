// Package textenc decodes raw document bytes into canonical UTF-8 text.
//
// UTF-8 is assumed first. Byte order marks select UTF-16 or UTF-32. Anything
// else is tried against a fixed list of legacy CJK encodings and BOM-less
// UTF-16/UTF-32; the first candidate that decodes cleanly wins.
package textenc

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// ErrUndecodable indicates no supported encoding decodes the input.
var ErrUndecodable = errors.New("no supported encoding decodes the input")

// Encoding names reported by Decode.
const (
	UTF8    = "utf-8"
	UTF16LE = "utf-16le"
	UTF16BE = "utf-16be"
	UTF32LE = "utf-32le"
	UTF32BE = "utf-32be"
	GBK     = "gbk"
	Big5    = "big5"
	EUCJP   = "euc-jp"
	EUCKR   = "euc-kr"
)

type candidate struct {
	name string
	enc  encoding.Encoding
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// boms is checked in order; UTF-32LE must precede UTF-16LE since its mark
// starts with the UTF-16LE one.
var boms = []struct {
	mark []byte
	candidate
}{
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, candidate{UTF32LE, utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)}},
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, candidate{UTF32BE, utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)}},
	{[]byte{0xFF, 0xFE}, candidate{UTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}},
	{[]byte{0xFE, 0xFF}, candidate{UTF16BE, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}},
}

// fallbacks are tried in order when the input is neither UTF-8 nor marked.
var fallbacks = []candidate{
	{GBK, simplifiedchinese.GBK},
	{Big5, traditionalchinese.Big5},
	{EUCJP, japanese.EUCJP},
	{EUCKR, korean.EUCKR},
	{UTF16LE, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)},
	{UTF32LE, utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)},
}

// Decode returns data as UTF-8 text along with the name of the encoding it
// was read as. Empty input decodes to "" as UTF-8.
func Decode(data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", UTF8, nil
	}
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8BOM)), UTF8, nil
	}

	for _, b := range boms {
		if bytes.HasPrefix(data, b.mark) {
			if text, ok := tryDecode(b.enc, data[len(b.mark):]); ok {
				return text, b.name, nil
			}
			break
		}
	}

	for _, c := range fallbacks {
		if text, ok := tryDecode(c.enc, data); ok {
			return text, c.name, nil
		}
	}
	return "", "", ErrUndecodable
}

// tryDecode decodes data with enc and rejects output holding replacement
// characters, which x/text decoders emit for invalid sequences.
func tryDecode(enc encoding.Encoding, data []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	text := string(out)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", false
	}
	return text, true
}
