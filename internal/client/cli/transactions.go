package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/dmitrijs2005/moneyflow/internal/client/models"
	"github.com/dmitrijs2005/moneyflow/internal/client/services"
)

// List fetches the transactions matching the current filters.
func (a *App) List(ctx context.Context) error {
	list, err := a.store.FetchList(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if q := a.store.Filters().Query(); q != "" {
		fmt.Fprintf(a.out, "Filters: %s\n", q)
	}
	for _, t := range list {
		fmt.Fprintln(a.out, t)
	}
	fmt.Fprintf(a.out, "%d transaction(s)\n", len(list))
	return nil
}

// Show prints a single transaction with its owner.
func (a *App) Show(ctx context.Context, id int64) error {
	tx, err := a.store.FetchOne(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Fprintln(a.out, tx.Transaction)
	fmt.Fprintf(a.out, "  owner:   %s\n", tx.UserEmail)
	fmt.Fprintf(a.out, "  created: %s\n", tx.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "  updated: %s\n", tx.UpdatedAt.Format("2006-01-02 15:04"))
	return nil
}

func (a *App) ensureMetadata(ctx context.Context) error {
	if len(a.store.Metadata().TransactionTypes) > 0 {
		return nil
	}
	if err := a.store.FetchMetadata(ctx); err != nil {
		log.Printf("error loading reference data: %v", err)
		return err
	}
	return nil
}

// Add collects the fields of a new transaction, offering the reference
// lists narrowed by the choices already made.
func (a *App) Add(ctx context.Context) error {
	if err := a.ensureMetadata(ctx); err != nil {
		return err
	}
	meta := a.store.Metadata()

	printTypes(a.out, meta.TransactionTypes)
	typeID, err := getInt64(a.reader, "Transaction type id", a.out, false)
	if err != nil {
		return err
	}

	printCategories(a.out, a.store.FilteredCategories(*typeID))
	categoryID, err := getInt64(a.reader, "Category id", a.out, false)
	if err != nil {
		return err
	}

	var subcategoryID *int64
	if subs := a.store.FilteredSubcategories(*categoryID); len(subs) > 0 {
		printSubcategories(a.out, subs)
		if subcategoryID, err = getInt64(a.reader, "Subcategory id (optional)", a.out, true); err != nil {
			return err
		}
	}

	printStatuses(a.out, meta.Statuses)
	statusID, err := getInt64(a.reader, "Status id", a.out, false)
	if err != nil {
		return err
	}

	amount, err := getAmount(a.reader, "Amount", a.out, false)
	if err != nil {
		return err
	}

	comment, err := getSimpleText(a.reader, "Comment (optional)", a.out)
	if err != nil {
		return err
	}

	tx, err := a.store.Create(ctx, models.TransactionInput{
		StatusID:          *statusID,
		TransactionTypeID: *typeID,
		CategoryID:        *categoryID,
		SubcategoryID:     subcategoryID,
		Amount:            *amount,
		Comment:           comment,
	})
	if tx != nil {
		fmt.Fprintf(a.out, "Created #%d\n", tx.ID)
	}
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	return nil
}

// Edit patches a transaction. Empty answers keep the current value and "-"
// removes the subcategory.
func (a *App) Edit(ctx context.Context, id int64) error {
	current, err := a.store.FetchOne(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Fprintln(a.out, current.Transaction)
	fmt.Fprintln(a.out, "Press Enter to keep a value.")

	var patch models.TransactionPatch

	if patch.StatusID, err = getInt64(a.reader, "Status id", a.out, true); err != nil {
		return err
	}
	if patch.TransactionTypeID, err = getInt64(a.reader, "Transaction type id", a.out, true); err != nil {
		return err
	}
	if patch.TransactionTypeID != nil {
		if err := a.ensureMetadata(ctx); err == nil {
			printCategories(a.out, a.store.FilteredCategories(*patch.TransactionTypeID))
		}
	}
	if patch.CategoryID, err = getInt64(a.reader, "Category id", a.out, true); err != nil {
		return err
	}

	sub, err := getSimpleText(a.reader, "Subcategory id ('-' to remove)", a.out)
	if err != nil {
		return err
	}
	switch sub {
	case "":
	case "-":
		patch.ClearSubcategory = true
	default:
		v, ok := parseID([]string{sub})
		if !ok {
			fmt.Fprintln(a.out, "Invalid subcategory id, left unchanged")
			break
		}
		patch.SubcategoryID = &v
	}

	if patch.Amount, err = getAmount(a.reader, "Amount", a.out, true); err != nil {
		return err
	}

	comment, err := getSimpleText(a.reader, "Comment", a.out)
	if err != nil {
		return err
	}
	if comment != "" {
		patch.Comment = &comment
	}

	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	tx, err := a.store.Update(ctx, id, patch)
	if tx != nil {
		fmt.Fprintln(a.out, "Updated", tx.Transaction)
	}
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	return nil
}

// Delete removes a transaction after confirmation.
func (a *App) Delete(ctx context.Context, id int64) error {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete transaction #%d? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	err = a.store.Delete(ctx, id)
	if err != nil && !errors.Is(err, services.ErrReload) {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Fprintf(a.out, "Deleted #%d\n", id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	return nil
}

// Filter replaces the filter set with the entered name=value lines. The
// list is not refetched; run list to apply.
func (a *App) Filter(_ context.Context) error {
	fmt.Fprintf(a.out, "Known filters: %s\n", strings.Join(models.FilterKeys, ", "))
	lines, err := GetKeyValues(a.reader, "Enter filters as name=value", a.out)
	if err != nil {
		return err
	}

	f, err := models.ParseFilters(lines)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	a.store.SetFilters(f)
	fmt.Fprintf(a.out, "Filters set: %s\n", f.Query())
	return nil
}

func (a *App) ClearFilters(_ context.Context) error {
	a.store.ClearFilters()
	fmt.Fprintln(a.out, "Filters cleared")
	return nil
}
