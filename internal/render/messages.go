package render

import (
	"fmt"

	"golang.org/x/text/language"
)

// Messages holds the visitor-facing strings for one locale.
type Messages struct {
	Tag language.Tag

	TitlePrefix        string
	NoDescription      string
	NoDescriptionShort string
	UnknownLanguage    string
	ViewRepository     string

	ProfileError  string
	ProjectsError string
	ConfigError   string

	// Page chrome.
	ObjectivesHeading string
	EducationHeading  string
	ExperienceHeading string
	ProjectsHeading   string
	FeaturedHeading   string
	SavePDF           string
	ToggleTheme       string
	Loading           string

	Today, Yesterday string
	// Ago formats "<n> <unit>" into a relative phrase.
	Ago                        string
	Day, Days, Week, Weeks     string
	Month, Months, Year, Years string
}

func (m Messages) plural(n int, one, many string) string {
	unit := many
	if n == 1 {
		unit = one
	}
	return fmt.Sprintf(m.Ago, fmt.Sprintf("%d %s", n, unit))
}

// Portuguese is the site's original locale and the default.
var Portuguese = Messages{
	Tag:                language.BrazilianPortuguese,
	TitlePrefix:        "Currículo - ",
	NoDescription:      "Sem descrição disponível",
	NoDescriptionShort: "Sem descrição",
	UnknownLanguage:    "Desconhecido",
	ViewRepository:     "Ver Repositório",
	ProfileError:       "Não foi possível carregar as informações do currículo.",
	ProjectsError:      "Não foi possível carregar os projetos do GitHub.",
	ConfigError:        "Não foi possível carregar as configurações.",
	ObjectivesHeading:  "Objetivos",
	EducationHeading:   "Formação",
	ExperienceHeading:  "Experiência Profissional",
	ProjectsHeading:    "Projetos",
	FeaturedHeading:    "Projetos em Destaque",
	SavePDF:            "Salvar PDF",
	ToggleTheme:        "Alternar tema",
	Loading:            "Carregando...",
	Today:              "hoje",
	Yesterday:          "ontem",
	Ago:                "há %s",
	Day:                "dia",
	Days:               "dias",
	Week:               "semana",
	Weeks:              "semanas",
	Month:              "mês",
	Months:             "meses",
	Year:               "ano",
	Years:              "anos",
}

// English is offered to visitors whose browser prefers it.
var English = Messages{
	Tag:                language.English,
	TitlePrefix:        "Résumé - ",
	NoDescription:      "No description available",
	NoDescriptionShort: "No description",
	UnknownLanguage:    "Unknown",
	ViewRepository:     "View Repository",
	ProfileError:       "Could not load the résumé information.",
	ProjectsError:      "Could not load the GitHub projects.",
	ConfigError:        "Could not load the site configuration.",
	ObjectivesHeading:  "Objectives",
	EducationHeading:   "Education",
	ExperienceHeading:  "Professional Experience",
	ProjectsHeading:    "Projects",
	FeaturedHeading:    "Featured Projects",
	SavePDF:            "Save PDF",
	ToggleTheme:        "Toggle theme",
	Loading:            "Loading...",
	Today:              "today",
	Yesterday:          "yesterday",
	Ago:                "%s ago",
	Day:                "day",
	Days:               "days",
	Week:               "week",
	Weeks:              "weeks",
	Month:              "month",
	Months:             "months",
	Year:               "year",
	Years:              "years",
}

var (
	supported = []Messages{Portuguese, English}
	matcher   = language.NewMatcher([]language.Tag{Portuguese.Tag, English.Tag})
)

// MessagesFor picks the best supported locale for an Accept-Language header
// value. Unparseable or unmatched input falls back to Portuguese.
func MessagesFor(acceptLanguage string) Messages {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Portuguese
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Portuguese
	}
	return supported[idx]
}
