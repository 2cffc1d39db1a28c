package wizard

import (
	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/lead"
	"zenvor/internal/i18n"
)

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

// ToolGroup is one block of the stack step.
type ToolGroup struct {
	Name  string
	Tools []string
}

var toolGroups = map[i18n.Locale][]ToolGroup{
	i18n.EN: {
		{"Messaging", []string{"WhatsApp", "Telegram", "Instagram DMs", "Facebook Messenger", "LinkedIn DMs", "Email"}},
		{"CRM", []string{"HubSpot", "Salesforce", "Bitrix24", "amoCRM", "Pipedrive", "No CRM yet"}},
		{"Calendar & Scheduling", []string{"Google Calendar", "Outlook / Office 365", "Calendly", "No tool yet"}},
		{"Automation & Data", []string{"n8n", "Make (Integromat)", "Zapier", "Airtable", "Notion", "Custom DB / SQL"}},
	},
	i18n.RU: {
		{"Мессенджеры", []string{"WhatsApp", "Telegram", "Instagram DM", "Facebook Messenger", "LinkedIn DM", "Email"}},
		{"CRM", []string{"HubSpot", "Salesforce", "Bitrix24", "amoCRM", "Pipedrive", "Пока нет CRM"}},
		{"Календарь и планирование", []string{"Google Calendar", "Outlook / Office 365", "Calendly", "Пока нет инструмента"}},
		{"Автоматизация и данные", []string{"n8n", "Make (Integromat)", "Zapier", "Airtable", "Notion", "Своя БД / SQL"}},
	},
}

// ToolGroups returns the stack step choices for locale.
func ToolGroups(locale i18n.Locale) []ToolGroup {
	if g, ok := toolGroups[locale]; ok {
		return g
	}
	return toolGroups[i18n.Default]
}

type labels map[i18n.Locale]map[string]string

func (l labels) options(locale i18n.Locale, values []string) []Option {
	names, ok := l[locale]
	if !ok {
		names = l[i18n.Default]
	}
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		label := names[v]
		if label == "" {
			label = v
		}
		opts = append(opts, Option{Value: v, Label: label})
	}
	return opts
}

var companySizeLabels = labels{
	i18n.EN: {"1_10": "1–10 · Startup", "11_50": "11–50 · Growing", "51_200": "51–200 · Scale-up", "201_plus": "201+ · Enterprise"},
	i18n.RU: {"1_10": "1–10 · Стартап", "11_50": "11–50 · Растущий", "51_200": "51–200 · Масштабируемый", "201_plus": "201+ · Корпорация"},
}

var painPointLabels = labels{
	i18n.EN: {
		"too_many_messages":   "Drowning in messages",
		"manual_scheduling":   "Manual scheduling",
		"data_entry":          "Repetitive data entry",
		"lead_qualification":  "Unqualified leads",
		"internal_knowledge":  "Lost internal knowledge",
		"workflow_automation": "Broken workflows",
		"other":               "Something else",
	},
	i18n.RU: {
		"too_many_messages":   "Не справляемся с сообщениями",
		"manual_scheduling":   "Ручное планирование встреч",
		"data_entry":          "Рутинный ввод данных",
		"lead_qualification":  "Неквалифицированные лиды",
		"internal_knowledge":  "Потеря знаний внутри команды",
		"workflow_automation": "Сломанные процессы",
		"other":               "Что-то другое",
	},
}

var budgetLabels = labels{
	i18n.EN: {"under_500": "Under $500 / mo", "500_1500": "$500 – $1,500 / mo", "1500_5000": "$1,500 – $5,000 / mo", "5000_plus": "$5,000+ / mo", "not_sure": "Not sure yet"},
	i18n.RU: {"under_500": "До $500 / мес", "500_1500": "$500 – $1,500 / мес", "1500_5000": "$1,500 – $5,000 / мес", "5000_plus": "$5,000+ / мес", "not_sure": "Пока не уверен"},
}

var interestLabels = labels{
	i18n.EN: {
		"communication_ai":      "Communication AI",
		"sales_ai":              "Sales AI",
		"support_ai":            "Support AI",
		"knowledge_ai":          "Knowledge AI",
		"scheduling_ai":         "Scheduling AI",
		"data_ai":               "Data AI",
		"automation_ai":         "Automation AI",
		"internal_assistant_ai": "Internal Assistant AI",
		"decision_support_ai":   "Decision Support AI",
		"full_platform":         "Full platform",
		"not_sure":              "Not sure yet",
	},
	i18n.RU: {
		"full_platform": "Вся платформа",
		"not_sure":      "Пока не знаю",
	},
}

func CompanySizeOptions(locale i18n.Locale) []Option {
	values := make([]string, 0, len(lead.CompanySizes))
	for _, v := range lead.CompanySizes {
		values = append(values, string(v))
	}
	return companySizeLabels.options(locale, values)
}

func PainPointOptions(locale i18n.Locale) []Option {
	values := make([]string, 0, len(lead.PainPoints))
	for _, v := range lead.PainPoints {
		values = append(values, string(v))
	}
	return painPointLabels.options(locale, values)
}

func BudgetOptions(locale i18n.Locale) []Option {
	values := make([]string, 0, len(lead.Budgets))
	for _, v := range lead.Budgets {
		values = append(values, string(v))
	}
	return budgetLabels.options(locale, values)
}

// ServiceInterestOptions falls back to the English product names where a
// locale has no translation.
func ServiceInterestOptions(locale i18n.Locale) []Option {
	values := make([]string, 0, len(demo.ServiceInterests))
	for _, v := range demo.ServiceInterests {
		values = append(values, string(v))
	}
	opts := interestLabels.options(locale, values)
	en := interestLabels[i18n.EN]
	for i := range opts {
		if opts[i].Label == opts[i].Value {
			opts[i].Label = en[opts[i].Value]
		}
	}
	return opts
}
