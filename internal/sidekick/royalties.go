package sidekick

import (
	"context"
	"fmt"
	"time"

	"sidekick/internal/csvimport"
)

// RoyaltyImports maps each distributor to its latest import. A nil entry
// means nothing was imported yet.
type RoyaltyImports map[csvimport.Distributor]*csvimport.RoyaltyImport

// DefaultRoyaltyImports has an empty slot for every distributor.
func DefaultRoyaltyImports() RoyaltyImports {
	out := make(RoyaltyImports, len(csvimport.Distributors))
	for _, d := range csvimport.Distributors {
		out[d] = nil
	}
	return out
}

// ImportRoyalties parses a statement and stores it for distributor,
// replacing the previous import of that distributor. The imports of the
// other distributors are kept.
func ImportRoyalties(ctx context.Context, slices *Slices, distributor csvimport.Distributor, fileName, text string, now time.Time) (csvimport.RoyaltyImport, error) {
	imp := csvimport.NewRoyaltyImport(fileName, text, now)
	_, err := slices.RoyaltiesImports.Update(ctx, func(all RoyaltyImports) RoyaltyImports {
		next := DefaultRoyaltyImports()
		for d, v := range all {
			next[d] = v
		}
		next[distributor] = &imp
		return next
	})
	if err != nil {
		return imp, fmt.Errorf("storing %s import: %w", distributor, err)
	}
	return imp, nil
}
