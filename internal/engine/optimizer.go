// Package engine implements the sheet cutting optimizer: a deterministic
// shelf packer, a set of interchangeable pre-sort strategies, the
// multi-pass best-of-N selector, and the sync/worker execution wrapper.
//
// Everything in this package is a pure, allocation-only computation: no
// I/O, no shared mutable state between runs, identical output for
// identical input.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/panelforge/panelcut/internal/model"
)

// Engine runs the multi-pass sheet cutting optimization.
type Engine struct {
	Config model.CutConfig
}

func New(cfg model.CutConfig) *Engine {
	return &Engine{Config: cfg}
}

// MultiPassOptimize packs the parts once per sort strategy and keeps the
// candidate with the fewest non-empty sheets, tie-broken by the highest
// material efficiency. Every pass works on an independent copy of the part
// list, so passes cannot interfere.
func MultiPassOptimize(parts []model.Part, cfg model.CutConfig) ([]model.Sheet, error) {
	if len(parts) == 0 {
		return nil, nil
	}

	var best []model.Sheet
	bestCount := -1
	bestEff := -1.0

	for _, strat := range Strategies {
		candidate := make([]model.Part, len(parts))
		copy(candidate, parts)
		strat.Sort(candidate)

		sheets, err := packParts(candidate, cfg)
		if err != nil {
			// Unpackable parts and invalid dimensions fail identically
			// for every strategy; report once.
			return nil, err
		}

		count := nonEmptySheets(sheets)
		eff := model.CalculateEfficiency(sheets, parts)
		if bestCount < 0 || count < bestCount || (count == bestCount && eff > bestEff) {
			best = sheets
			bestCount = count
			bestEff = eff
		}
	}
	return best, nil
}

func nonEmptySheets(sheets []model.Sheet) int {
	count := 0
	for _, s := range sheets {
		if len(s.Placements) > 0 {
			count++
		}
	}
	return count
}

// groupKey buckets parts by material identity.
type groupKey struct {
	brand    string
	laminate string
}

// Run groups prepared parts by (brand, laminate), optimizes each group
// independently, and returns one GroupResult per group with stable sheet
// identifiers. Failures never escape as panics: any group error is
// captured and returned joined, alongside the results of the groups that
// succeeded.
func (e *Engine) Run(parts []model.Part) (results []model.GroupResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("optimizer internal failure: %v", r)
		}
	}()

	if cfgErr := e.Config.Validate(); cfgErr != nil {
		return nil, cfgErr
	}
	if len(parts) == 0 {
		return nil, nil
	}

	buckets := make(map[groupKey][]model.Part)
	for _, p := range parts {
		k := groupKey{brand: p.Brand, laminate: p.Laminate}
		buckets[k] = append(buckets[k], p)
	}

	keys := make([]groupKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].brand != keys[j].brand {
			return keys[i].brand < keys[j].brand
		}
		return keys[i].laminate < keys[j].laminate
	})

	var errs []error
	for _, k := range keys {
		sheets, groupErr := MultiPassOptimize(buckets[k], e.Config)
		if groupErr != nil {
			var unpackable *UnpackableError
			if errors.As(groupErr, &unpackable) {
				unpackable.Brand = k.brand
				unpackable.Laminate = k.laminate
			}
			errs = append(errs, fmt.Errorf("group %s/%s: %w", k.brand, k.laminate, groupErr))
			continue
		}

		prefix := sheetIDPrefix(k)
		for i := range sheets {
			sheets[i].ID = fmt.Sprintf("%s-%d", prefix, i+1)
		}
		results = append(results, model.GroupResult{
			Brand:    k.brand,
			Laminate: k.laminate,
			Sheets:   sheets,
		})
	}
	return results, errors.Join(errs...)
}

// sheetIDPrefix derives a stable, readable sheet ID prefix from the group
// material identity.
func sheetIDPrefix(k groupKey) string {
	slug := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		s = strings.Join(strings.Fields(s), "-")
		if s == "" {
			return "none"
		}
		return s
	}
	return slug(k.brand) + "-" + slug(k.laminate)
}
