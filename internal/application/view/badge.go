package view

import "github.com/jhoicas/taff-facture/internal/domain/entity"

// Variant variante visual de la insignia de estado.
type Variant string

const (
	VariantDraft     Variant = "draft"
	VariantPending   Variant = "pending"
	VariantPaid      Variant = "paid"
	VariantCancelled Variant = "cancelled"
	VariantUnpaid    Variant = "unpaid"
	VariantUnknown   Variant = "unknown"
)

// Badge insignia de estado: icono, etiqueta y clase de estilo.
type Badge struct {
	Variant Variant `json:"variant"`
	Icon    string  `json:"icon"`
	Label   string  `json:"label"`
	Emoji   string  `json:"emoji,omitempty"`
	Class   string  `json:"class"`
}

// Text etiqueta visible con su emoji.
func (b Badge) Text() string {
	if b.Emoji == "" {
		return b.Label
	}
	return b.Label + " " + b.Emoji
}

var badges = map[entity.Status]Badge{
	entity.StatusDraft: {
		Variant: VariantDraft, Icon: "file-text", Label: "Brouillon", Emoji: "🗒️",
		Class: "badge badge-lg",
	},
	entity.StatusPending: {
		Variant: VariantPending, Icon: "clock", Label: "En attente", Emoji: "⏳",
		Class: "badge badge-lg badge-warning",
	},
	entity.StatusPaid: {
		Variant: VariantPaid, Icon: "check-circle", Label: "Payée", Emoji: "💲",
		Class: "badge badge-lg badge-success",
	},
	entity.StatusCancelled: {
		Variant: VariantCancelled, Icon: "x-circle", Label: "Annulée", Emoji: "✖️",
		Class: "badge badge-lg badge-info",
	},
	entity.StatusUnpaid: {
		Variant: VariantUnpaid, Icon: "x-circle", Label: "Impayée", Emoji: "⚠️",
		Class: "badge badge-lg badge-error",
	},
}

var unknownBadge = Badge{
	Variant: VariantUnknown, Icon: "x-circle", Label: "Indéfini",
	Class: "badge badge-lg",
}

// BadgeFor mapeo total: cualquier código fuera de 1..5 resuelve a Indéfini.
func BadgeFor(s entity.Status) Badge {
	if b, ok := badges[s]; ok {
		return b
	}
	return unknownBadge
}
