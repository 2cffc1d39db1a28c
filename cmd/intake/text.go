package main

import "zenvor/internal/i18n"

// copyText is the form copy shown by the terminal wizard.
type copyText struct {
	StepTitle    [3]string
	FullName     string
	Email        string
	Company      string
	CompanySize  string
	OtherTools   string
	PainPoint    string
	PainOther    string
	Budget       string
	Context      string
	Phone        string
	JobTitle     string
	Interest     string
	Message      string
	Referral     string
	Continue     string
	Back         string
	Submit       string
	Submitted    string
	DemoBooked   string
	DemoTitle    string
	FixErrors    string
	Cancelled    string
	NeedTerminal string
}

var copies = map[i18n.Locale]copyText{
	i18n.EN: {
		StepTitle:    [3]string{"Step 1 of 3 · About you", "Step 2 of 3 · Your current stack", "Step 3 of 3 · Your main challenge"},
		FullName:     "Full name",
		Email:        "Work email",
		Company:      "Company",
		CompanySize:  "Team size",
		OtherTools:   "Other tools (comma-separated)",
		PainPoint:    "What slows your team down most?",
		PainOther:    "Tell us more",
		Budget:       "Monthly budget",
		Context:      "Anything else we should know?",
		Phone:        "Phone",
		JobTitle:     "Job title",
		Interest:     "What are you interested in?",
		Message:      "Message",
		Referral:     "How did you hear about us?",
		Continue:     "Continue",
		Back:         "Back",
		Submit:       "Submit",
		Submitted:    "Thanks! We received your request. Reference:",
		DemoBooked:   "Thanks! We'll reach out to schedule your demo. Reference:",
		DemoTitle:    "Book a demo",
		FixErrors:    "Please fix the following:",
		Cancelled:    "Cancelled.",
		NeedTerminal: "this command is interactive and needs a terminal",
	},
	i18n.RU: {
		StepTitle:    [3]string{"Шаг 1 из 3 · О вас", "Шаг 2 из 3 · Ваши инструменты", "Шаг 3 из 3 · Главная проблема"},
		FullName:     "Полное имя",
		Email:        "Рабочий email",
		Company:      "Компания",
		CompanySize:  "Размер команды",
		OtherTools:   "Другие инструменты (через запятую)",
		PainPoint:    "Что больше всего тормозит команду?",
		PainOther:    "Расскажите подробнее",
		Budget:       "Бюджет в месяц",
		Context:      "Что ещё нам стоит знать?",
		Phone:        "Телефон",
		JobTitle:     "Должность",
		Interest:     "Что вас интересует?",
		Message:      "Сообщение",
		Referral:     "Как вы о нас узнали?",
		Continue:     "Далее",
		Back:         "Назад",
		Submit:       "Отправить",
		Submitted:    "Спасибо! Мы получили вашу заявку. Номер:",
		DemoBooked:   "Спасибо! Мы свяжемся с вами, чтобы назначить демо. Номер:",
		DemoTitle:    "Записаться на демо",
		FixErrors:    "Исправьте, пожалуйста:",
		Cancelled:    "Отменено.",
		NeedTerminal: "команда интерактивная, нужен терминал",
	},
}

func copyFor(l i18n.Locale) copyText {
	if c, ok := copies[l]; ok {
		return c
	}
	return copies[i18n.Default]
}
