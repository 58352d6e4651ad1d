package testutils

import (
	"fmt"
	"time"

	"github.com/nfrund/folio/internal/domain"
)

// Profile is a complete, valid résumé.
func Profile() *domain.Profile {
	return &domain.Profile{
		Name:      "Maria Clara Souza",
		Objective: "Construir sistemas confiáveis.",
		Contact: domain.Contact{
			Email:  "maria@example.com",
			GitHub: "https://github.com/mcsouza",
			Phone:  "(11) 98765-4321",
		},
		Education: []domain.Education{
			{Course: "Ciência da Computação", Institution: "USP", Period: "2015 - 2019"},
		},
		Experiences: []domain.Experience{
			{Role: "Engenheira de Software", Company: "Acme", Period: "2020 - atual", Description: "<p>APIs em Go.</p>"},
		},
	}
}

// Repositories returns n repositories named repo-1..repo-n, newest first.
func Repositories(n int) []domain.Repository {
	repos := make([]domain.Repository, n)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range repos {
		name := fmt.Sprintf("repo-%d", i+1)
		repos[i] = domain.Repository{
			Name:      name,
			HTMLURL:   "https://github.com/mcsouza/" + name,
			CreatedAt: base.AddDate(0, 0, -i),
		}
	}
	return repos
}
