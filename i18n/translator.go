package i18n

import "strings"

// Message identifiers used by the cleaning engine and the field builders.
const (
	MsgInvalidType      = "invalid_type"
	MsgRequired         = "required"
	MsgTooSmall         = "too_small"
	MsgTooBig           = "too_big"
	MsgStringTooShort   = "string.too_short"
	MsgStringTooLong    = "string.too_long"
	MsgPattern          = "pattern"
	MsgListTooShort     = "list.too_short"
	MsgListTooLong      = "list.too_long"
	MsgItem             = "item"
	MsgUnknownKeys      = "unknown_key"
	MsgInvalidDatetime  = "invalid_format"
	MsgOverflow         = "overflow"
	MsgTimezoneRequired = "timezone.required"
	MsgTimezoneRejected = "timezone.rejected"
	MsgInvalidEnum      = "invalid_enum"
	MsgBadRequest       = "bad_request"
)

// Translator retrieves localized messages for message identifiers.
// data provides optional values substituted into {name} placeholders
// (for example "min", "expected" or "item").
type Translator interface {
	Message(id string, data map[string]string) string
}

var catalogues = map[string]map[string]string{
	"en": {
		MsgInvalidType:      "Expected type {expected}",
		MsgRequired:         "Required but missing",
		MsgTooSmall:         "Value must be >= {min}",
		MsgTooBig:           "Value must be <= {max}",
		MsgStringTooShort:   "String must be at least {min} characters long",
		MsgStringTooLong:    "String cannot be longer than {max} characters",
		MsgPattern:          `String does not match regex "{pattern}"`,
		MsgListTooShort:     "List length must be >= {min}",
		MsgListTooLong:      "List length must be <= {max}",
		MsgItem:             "Field exception on item {item}",
		MsgUnknownKeys:      "Unexpected fields {keys}",
		MsgInvalidDatetime:  "Invalid datetime: {reason}",
		MsgOverflow:         "Overflow error",
		MsgTimezoneRequired: "Value must be timezone aware",
		MsgTimezoneRejected: "Value must not be timezone aware",
		MsgInvalidEnum:      "Expected {options}",
		MsgBadRequest:       "Request validation error",
	},
	"ja": {
		MsgInvalidType:      "型が不正です（期待: {expected}）",
		MsgRequired:         "必須項目が不足しています",
		MsgTooSmall:         "{min} 以上である必要があります",
		MsgTooBig:           "{max} 以下である必要があります",
		MsgStringTooShort:   "{min} 文字以上である必要があります",
		MsgStringTooLong:    "{max} 文字以下である必要があります",
		MsgPattern:          `正規表現 "{pattern}" に一致しません`,
		MsgListTooShort:     "要素数は {min} 以上である必要があります",
		MsgListTooLong:      "要素数は {max} 以下である必要があります",
		MsgItem:             "項目 {item} が不正です",
		MsgUnknownKeys:      "未知のキーです: {keys}",
		MsgInvalidDatetime:  "日時が不正です: {reason}",
		MsgOverflow:         "オーバーフローしました",
		MsgTimezoneRequired: "タイムゾーン付きである必要があります",
		MsgTimezoneRejected: "タイムゾーンを含めることはできません",
		MsgInvalidEnum:      "{options} のいずれかである必要があります",
		MsgBadRequest:       "リクエストの検証に失敗しました",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(id string, data map[string]string) string {
	tmpl, ok := catalogues[t.lang][id]
	if !ok {
		tmpl, ok = catalogues["en"][id]
		if !ok {
			return id
		}
	}
	return render(tmpl, data)
}

func render(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
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

// T fetches a message for the given identifier using the current Translator.
func T(id string, data map[string]string) string { return currentTranslator.Message(id, data) }
