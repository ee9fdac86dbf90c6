package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
)

func printTypes(w io.Writer, types []models.TransactionType) {
	fmt.Fprintln(w, "Transaction types:")
	for _, t := range types {
		fmt.Fprintf(w, "  %d  %s\n", t.ID, t.Name)
	}
}

func printCategories(w io.Writer, cats []models.Category) {
	fmt.Fprintln(w, "Categories:")
	for _, c := range cats {
		fmt.Fprintf(w, "  %d  %s (type %d)\n", c.ID, c.Name, c.TransactionTypeID)
	}
}

func printSubcategories(w io.Writer, subs []models.Subcategory) {
	fmt.Fprintln(w, "Subcategories:")
	for _, s := range subs {
		fmt.Fprintf(w, "  %d  %s (category %d)\n", s.ID, s.Name, s.CategoryID)
	}
}

func printStatuses(w io.Writer, statuses []models.Status) {
	fmt.Fprintln(w, "Statuses:")
	for _, s := range statuses {
		fmt.Fprintf(w, "  %d  %s\n", s.ID, s.Name)
	}
}

// Meta reloads and prints all reference lists.
func (a *App) Meta(ctx context.Context) error {
	if err := a.store.FetchMetadata(ctx); err != nil {
		log.Printf("error loading reference data: %v", err)
		return err
	}
	m := a.store.Metadata()
	printTypes(a.out, m.TransactionTypes)
	printCategories(a.out, m.Categories)
	printSubcategories(a.out, m.Subcategories)
	printStatuses(a.out, m.Statuses)
	return nil
}

// Categories prints the categories of a transaction type, or all of them
// for typeID 0.
func (a *App) Categories(ctx context.Context, typeID int64) error {
	if err := a.ensureMetadata(ctx); err != nil {
		return err
	}
	printCategories(a.out, a.store.FilteredCategories(typeID))
	return nil
}

func (a *App) Subcategories(ctx context.Context, categoryID int64) error {
	if err := a.ensureMetadata(ctx); err != nil {
		return err
	}
	printSubcategories(a.out, a.store.FilteredSubcategories(categoryID))
	return nil
}
