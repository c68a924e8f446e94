package curriculum

import (
	"errors"
	"fmt"
	"strings"
)

// TierName identifies a difficulty tier.
type TierName string

const (
	TierIniciante     TierName = "iniciante"
	TierIntermediario TierName = "intermediario"
	TierAvancado      TierName = "avancado"
)

// DisplayOrder is the fixed order tiers are selected and rendered in.
var DisplayOrder = []TierName{TierIniciante, TierIntermediario, TierAvancado}

var ErrInvalidCatalog = errors.New("invalid catalog")

// Valid reports whether the name is one of the known tiers.
func (t TierName) Valid() bool {
	return t.rank() >= 0
}

// Title returns the capitalized display label, e.g. "Iniciante".
func (t TierName) Title() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (t TierName) rank() int {
	for i, name := range DisplayOrder {
		if name == t {
			return i
		}
	}
	return -1
}

// Tier is one row of the catalog: the topics unlocked once a student reaches MinSemester.
type Tier struct {
	Name        TierName
	MinSemester int
	Topics      []string
}

// Catalog is the immutable tier table the selector reads from.
type Catalog struct {
	tiers  []Tier
	source string
}

// NewCatalog validates and copies the given tiers.
func NewCatalog(source string, tiers ...Tier) (Catalog, error) {
	if len(tiers) == 0 {
		return Catalog{}, fmt.Errorf("%w: no tiers", ErrInvalidCatalog)
	}
	out := make([]Tier, 0, len(tiers))
	lastRank := -1
	lastMin := 0
	for _, tier := range tiers {
		rank := tier.Name.rank()
		if rank < 0 {
			return Catalog{}, fmt.Errorf("%w: unknown tier %q", ErrInvalidCatalog, tier.Name)
		}
		if rank <= lastRank {
			return Catalog{}, fmt.Errorf("%w: tier %q is duplicated or out of order", ErrInvalidCatalog, tier.Name)
		}
		if tier.MinSemester < 1 {
			return Catalog{}, fmt.Errorf("%w: tier %q must unlock at semester >= 1", ErrInvalidCatalog, tier.Name)
		}
		if tier.MinSemester < lastMin {
			return Catalog{}, fmt.Errorf("%w: tier %q unlocks before the previous tier", ErrInvalidCatalog, tier.Name)
		}
		topics := make([]string, 0, len(tier.Topics))
		for _, topic := range tier.Topics {
			trimmed := strings.TrimSpace(topic)
			if trimmed == "" {
				return Catalog{}, fmt.Errorf("%w: tier %q has a blank topic", ErrInvalidCatalog, tier.Name)
			}
			topics = append(topics, trimmed)
		}
		out = append(out, Tier{Name: tier.Name, MinSemester: tier.MinSemester, Topics: topics})
		lastRank = rank
		lastMin = tier.MinSemester
	}
	if strings.TrimSpace(source) == "" {
		source = "custom"
	}
	return Catalog{tiers: out, source: source}, nil
}

// DefaultCatalog returns the built-in table.
func DefaultCatalog() Catalog {
	c, err := NewCatalog("builtin",
		Tier{
			Name:        TierIniciante,
			MinSemester: 1,
			Topics: []string{
				"Logica de Programacao",
				"Matematica Discreta",
				"Arquitetura de Software",
				"Design de Sistemas",
				"Projeto Interdisciplinar",
				"Modelagem De Processos",
				"Gerenciamento de Requisitos",
				"Analise de Algoritmos",
			},
		},
		Tier{
			Name:        TierIntermediario,
			MinSemester: 3,
			Topics: []string{
				"Estrutura de Dados",
				"Banco de Dados 1",
				"Programacao Orientada a Objetos",
				"Sistemas Operacionais",
				"Estatistica",
				"Algebra Linear",
				"Microcontroladores",
				"Paradigmas de Programacao",
			},
		},
		Tier{
			Name:        TierAvancado,
			MinSemester: 5,
			Topics: []string{
				"Inteligencia Artificial",
				"Redes de Computadores",
				"Compiladores",
				"Seguranca da Informacao",
				"Sistemas Distribuidos",
				"Banco de Dados 2",
				"Calculo",
				"Desenvolvimento de Jogos",
			},
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Tiers returns a copy of the tier table in display order.
func (c Catalog) Tiers() []Tier {
	out := make([]Tier, len(c.tiers))
	for i, t := range c.tiers {
		out[i] = Tier{Name: t.Name, MinSemester: t.MinSemester, Topics: append([]string(nil), t.Topics...)}
	}
	return out
}

// Source names where the catalog was loaded from.
func (c Catalog) Source() string {
	return c.source
}

// TopicCount is the number of topics across all tiers.
func (c Catalog) TopicCount() int {
	n := 0
	for _, t := range c.tiers {
		n += len(t.Topics)
	}
	return n
}

// Empty reports whether the catalog was never initialized.
func (c Catalog) Empty() bool {
	return len(c.tiers) == 0
}
