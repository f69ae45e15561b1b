package services

import (
	"keyword-extraction-service/internal/catalog"
	"keyword-extraction-service/internal/logger"
	"keyword-extraction-service/models"
)

// AssembleKeywords converts a sequence of keyword ids into the bilingual
// records the API returns. Input order is preserved; duplicate ids keep
// their first occurrence. When an id has several French name variants the
// first one in file order is surfaced. Ids absent from the catalog are
// skipped with a data-consistency warning rather than failing the
// request. Always returns a non-nil slice so the JSON encodes as [].
func AssembleKeywords(ids []string, cat *catalog.Catalog) []models.Keyword {
	keywords := make([]models.Keyword, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		names, ok := cat.Lookup(id)
		if !ok {
			logger.Warn("Matched keyword id not present in catalog, skipping", "id", id)
			continue
		}

		french := ""
		if len(names.French) > 0 {
			french = names.French[0]
		}

		keywords = append(keywords, models.Keyword{
			ID: id,
			Name: models.KeywordName{
				En: names.English,
				Fr: french,
			},
		})
	}
	return keywords
}
