package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "value", "allowed" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Placeholders of
// the form {name} are replaced from data; missing entries leave the bare name.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"required":        "required field missing",
		"type_mismatch":   "expected {expected}",
		"invalid_enum":    "value {value} is not one of {allowed}",
		"invalid_format":  "invalid {format}",
		"unknown_key":     "unknown key {key}",
		"duplicate_key":   "duplicate key {key}",
		"out_of_range":    "value {value} outside {range}",
		"exclusive_value": "only one value_* field may be set",
		"inconsistent":    "inconsistent with {other}",
		"parse_error":     "malformed input",
		"truncated":       "input exceeds size limit",
	},
	"ja": {
		"required":        "必須フィールドが不足しています",
		"type_mismatch":   "型が不正です ({expected} が必要)",
		"invalid_enum":    "値 {value} は {allowed} のいずれでもありません",
		"invalid_format":  "{format} の形式が不正です",
		"unknown_key":     "未知のキーです ({key})",
		"duplicate_key":   "キーが重複しています ({key})",
		"out_of_range":    "値 {value} が範囲 {range} 外です",
		"exclusive_value": "value_* フィールドは1つだけ指定できます",
		"inconsistent":    "{other} と矛盾しています",
		"parse_error":     "解析エラー",
		"truncated":       "入力がサイズ上限を超えています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(tmpl, '{')
		if i < 0 {
			b.WriteString(tmpl)
			break
		}
		j := strings.IndexByte(tmpl[i:], '}')
		if j < 0 {
			b.WriteString(tmpl)
			break
		}
		b.WriteString(tmpl[:i])
		if v, ok := data[tmpl[i+1:i+j]]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(tmpl[i+1 : i+j])
		}
		tmpl = tmpl[i+j+1:]
	}
	return b.String()
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
