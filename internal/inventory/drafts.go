package inventory

import (
	"fmt"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/tbruckner/heldeninv/internal/domain"
)

// ItemDraft carries the user-editable fields of an item, both for creation
// and for edits. Validation happens here, at the edit boundary, not inside
// the entity.
type ItemDraft struct {
	Name          string   `json:"name"`
	Quantity      int      `json:"quantity"`
	WeightPerUnit float64  `json:"weightPerUnit"`
	Value         float64  `json:"value"`
	IsConsumable  bool     `json:"isConsumable"`
	Details       string   `json:"details"`
	Tags          []string `json:"tags"`
}

func (d *ItemDraft) Validate() error {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&d.Quantity, validation.Min(0)),
		validation.Field(&d.WeightPerUnit, validation.Min(0.0)),
		validation.Field(&d.Value, validation.Min(0.0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// build creates a new item from the draft.
func (d *ItemDraft) build() *domain.Item {
	it := domain.NewItem(d.Name)
	it.Quantity = d.Quantity
	it.WeightPerUnit = d.WeightPerUnit
	it.Value = d.Value
	it.IsConsumable = d.IsConsumable
	it.Details = d.Details
	it.Tags = append([]string(nil), d.Tags...)
	return it
}

// apply copies the draft onto an existing item and reports whether anything
// changed. Unchanged float fields are compared within epsilon so re-saving
// an untouched form does not count as an edit.
func (d *ItemDraft) apply(it *domain.Item) bool {
	changed := it.Name != d.Name ||
		it.Quantity != d.Quantity ||
		!domain.NearlyEqual(it.WeightPerUnit, d.WeightPerUnit) ||
		!domain.NearlyEqual(it.Value, d.Value) ||
		it.IsConsumable != d.IsConsumable ||
		it.Details != d.Details ||
		!slices.Equal(it.Tags, d.Tags)
	if !changed {
		return false
	}
	it.Name = d.Name
	it.Quantity = d.Quantity
	it.WeightPerUnit = d.WeightPerUnit
	it.Value = d.Value
	it.IsConsumable = d.IsConsumable
	it.Details = d.Details
	it.Tags = append([]string(nil), d.Tags...)
	return true
}

// ContainerPatch carries the user-editable fields of a container.
type ContainerPatch struct {
	Name              string `json:"name"`
	Details           string `json:"details"`
	IsCarried         bool   `json:"isCarried"`
	IncludeCoinWeight bool   `json:"includeCoinWeight"`
}

func (p *ContainerPatch) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
