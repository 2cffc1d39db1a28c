// Package i18n negotiates the visitor locale and holds the static intake
// messages shown by the forms.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

type Locale string

const (
	EN Locale = "en"
	RU Locale = "ru"

	Default = EN
)

// Locales lists the supported locales in matcher preference order.
var Locales = []Locale{EN, RU}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Russian})

// Parse returns the supported locale named by tag, or Default.
func Parse(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, l := range Locales {
		if tag == string(l) || strings.HasPrefix(tag, string(l)+"-") || strings.HasPrefix(tag, string(l)+"_") {
			return l
		}
	}
	return Default
}

// Negotiate picks a locale from an Accept-Language header value.
func Negotiate(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	_, idx := language.MatchStrings(matcher, acceptLanguage)
	if idx < 0 || idx >= len(Locales) {
		return Default
	}
	return Locales[idx]
}

// FromEnv derives a locale from a POSIX LANG value such as "ru_RU.UTF-8".
func FromEnv(lang string) Locale {
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	return Negotiate(strings.ReplaceAll(lang, "_", "-"))
}

// Messages is the user-facing copy for the intake forms.
type Messages struct {
	NameRequired     string
	EmailInvalid     string
	CompanyRequired  string
	SizeRequired     string
	PainRequired     string
	PhoneInvalid     string
	AlreadySubmitted string
	Generic          string
}

var dictionaries = map[Locale]Messages{
	EN: {
		NameRequired:     "Please enter your full name.",
		EmailInvalid:     "Please enter a valid email address.",
		CompanyRequired:  "Please enter your company name.",
		SizeRequired:     "Please select your team size.",
		PainRequired:     "Please select your main challenge.",
		PhoneInvalid:     "Please enter a valid phone number.",
		AlreadySubmitted: "You've already submitted today. We'll be in touch shortly.",
		Generic:          "Something went wrong. Please try again.",
	},
	RU: {
		NameRequired:     "Введите полное имя.",
		EmailInvalid:     "Введите корректный email.",
		CompanyRequired:  "Введите название компании.",
		SizeRequired:     "Выберите размер команды.",
		PainRequired:     "Выберите основную проблему.",
		PhoneInvalid:     "Введите номер телефона.",
		AlreadySubmitted: "Вы уже отправили заявку сегодня. Мы скоро свяжемся с вами.",
		Generic:          "Что-то пошло не так. Попробуйте ещё раз.",
	},
}

// For returns the dictionary for l, falling back to Default.
func For(l Locale) Messages {
	if m, ok := dictionaries[l]; ok {
		return m
	}
	return dictionaries[Default]
}
