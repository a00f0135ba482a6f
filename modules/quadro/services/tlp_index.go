package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/madukisp/oris-vagas/modules/quadro/domain/types"
)

// ChaveTLP is the full staffing key. Carga is the canonical numeric form
// produced by CanonCarga; entries whose hours fail coercion are never
// indexed under a key and therefore never match an employee.
type ChaveTLP struct {
	Contrato string
	Unidade  string
	Cargo    string
	Carga    string
}

// ChaveCargo is the staffing key with the hours dimension dropped.
type ChaveCargo struct {
	Contrato string
	Unidade  string
	Cargo    string
}

// TLPIndex is a pure derivation of one tlp snapshot: point lookups on the
// full key, aggregate totals per role key.
type TLPIndex struct {
	porChave map[ChaveTLP]int
	porCargo map[ChaveCargo]int
}

// CanonCarga coerces a weekly-hours value to its canonical numeric form,
// so "40", "40.0" and " 40 " index identically. The bool reports whether
// the value is numeric at all.
func CanonCarga(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}

// BuildTLPIndex indexes a plan snapshot. Duplicate full keys are
// last-write-wins in the lookup; each collision is reported back as a
// validation warning so the caller can surface it instead of silently
// trusting one of the two quantities.
func BuildTLPIndex(entries []types.TLPEntry) (TLPIndex, []string) {
	ix := TLPIndex{
		porChave: make(map[ChaveTLP]int, len(entries)),
		porCargo: make(map[ChaveCargo]int),
	}
	var warnings []string

	for _, e := range entries {
		cargoKey := ChaveCargo{Contrato: e.Contrato, Unidade: e.Unidade, Cargo: e.Cargo}
		ix.porCargo[cargoKey] += e.QuantidadeIdeal

		carga, ok := CanonCarga(e.CargaHoraria)
		if !ok {
			continue
		}
		key := ChaveTLP{Contrato: e.Contrato, Unidade: e.Unidade, Cargo: e.Cargo, Carga: carga}
		if prev, exists := ix.porChave[key]; exists {
			warnings = append(warnings, fmt.Sprintf(
				"tlp duplicada para (%s, %s, %s, %sh): %d substituido por %d",
				e.Contrato, e.Unidade, e.Cargo, carga, prev, e.QuantidadeIdeal))
		}
		ix.porChave[key] = e.QuantidadeIdeal
	}
	return ix, warnings
}

func (ix TLPIndex) QuantidadeIdeal(key ChaveTLP) (int, bool) {
	v, ok := ix.porChave[key]
	return v, ok
}

// TotalCargo sums authorized quantities across every plan entry sharing
// the role key, including entries whose hours value is unparseable.
func (ix TLPIndex) TotalCargo(contrato, unidade, cargo string) int {
	return ix.porCargo[ChaveCargo{Contrato: contrato, Unidade: unidade, Cargo: cargo}]
}
