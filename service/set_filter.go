package service

import (
	"slices"
	"sort"

	"mtg-labels/models"
	"mtg-labels/utils"
)

// FilterSets keeps the records allowed by cfg, preserving input order.
//
// In allow-list mode only records whose code is listed are kept and the
// ignore list, size and category rules are not consulted. Otherwise a record
// is dropped by the first matching rule: ignored code, card count below the
// minimum, category outside a non-empty allowed set.
func FilterSets(records []models.SetRecord, cfg models.FilterConfig) []models.SetRecord {
	keep := setPredicate(cfg)

	filtered := make([]models.SetRecord, 0, len(records))
	for _, record := range records {
		if keep(record) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// SelectSets filters the newest-first catalog listing and returns the
// surviving sets oldest-first, together with requested codes the catalog
// does not know.
func SelectSets(records []models.SetRecord, cfg models.FilterConfig) models.FilterResult {
	filtered := FilterSets(records, cfg)
	slices.Reverse(filtered)

	return models.FilterResult{
		Sets:         filtered,
		UnknownCodes: unknownCodes(records, cfg),
	}
}

func setPredicate(cfg models.FilterConfig) func(models.SetRecord) bool {
	if cfg.AllowListMode() {
		allowed := utils.CodeSet(cfg.SetCodes)
		return func(record models.SetRecord) bool {
			_, ok := allowed[utils.NormalizeCode(record.Code)]
			return ok
		}
	}

	ignored := utils.CodeSet(cfg.IgnoredSets)
	types := make(map[string]struct{}, len(cfg.SetTypes))
	for _, setType := range cfg.SetTypes {
		types[setType] = struct{}{}
	}

	return func(record models.SetRecord) bool {
		if _, ok := ignored[utils.NormalizeCode(record.Code)]; ok {
			return false
		}
		if record.CardCount < cfg.MinimumSetSize {
			return false
		}
		if len(types) > 0 {
			if _, ok := types[record.SetType]; !ok {
				return false
			}
		}
		return true
	}
}

func unknownCodes(records []models.SetRecord, cfg models.FilterConfig) []string {
	if !cfg.AllowListMode() {
		return nil
	}

	known := make(map[string]struct{}, len(records))
	for _, record := range records {
		known[utils.NormalizeCode(record.Code)] = struct{}{}
	}

	var unknown []string
	for _, code := range utils.NormalizeCodes(cfg.SetCodes) {
		if _, ok := known[code]; !ok {
			unknown = append(unknown, code)
		}
	}
	sort.Strings(unknown)
	return unknown
}
