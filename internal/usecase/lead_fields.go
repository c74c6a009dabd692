package usecase

import (
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type LeadFields struct {
	Name       string
	Email      string
	Phone      string
	Segment    string
	Investment string
	Objective  string
}

type leadFieldRule struct {
	keys   []string
	assign func(f *LeadFields, value string)
}

// A ordem importa: "company_name" cai em Name porque a regra de nome vem primeiro.
var leadFieldRules = []leadFieldRule{
	{[]string{"name", "full_name"}, func(f *LeadFields, v string) { f.Name = v }},
	{[]string{"email"}, func(f *LeadFields, v string) { f.Email = v }},
	{[]string{"phone", "telefone"}, func(f *LeadFields, v string) { f.Phone = v }},
	{[]string{"segment", "segmento", "nicho"}, func(f *LeadFields, v string) { f.Segment = v }},
	{[]string{"invest", "budget", "orçamento"}, func(f *LeadFields, v string) { f.Investment = v }},
	{[]string{"objective", "objetivo", "goal"}, func(f *LeadFields, v string) { f.Objective = v }},
}

// ParseLeadFields mapeia o field_data do formulário para os atributos do lead.
// Heurística por substring: primeira regra que casar vence, campos sem regra são ignorados.
func ParseLeadFields(fields []entity.LeadField) LeadFields {
	var out LeadFields

	for _, field := range fields {
		if len(field.Values) == 0 {
			continue
		}
		name := strings.ToLower(field.Name)
		value := field.Values[0]

		for _, rule := range leadFieldRules {
			if containsAny(name, rule.keys) {
				rule.assign(&out, value)
				break
			}
		}
	}

	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
