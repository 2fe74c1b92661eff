package enum

// IntakeTab is the active intake mode of an encargo draft: items picked
// from the catalog, a custom garment, or a made-to-measure garment.
type IntakeTab string

const (
	IntakeTabCatalogo IntakeTab = "catalogo"
	IntakeTabPrenda   IntakeTab = "prenda"
	IntakeTabMedidas  IntakeTab = "medidas"
)

func (t IntakeTab) Valid() bool {
	switch t {
	case IntakeTabCatalogo, IntakeTabPrenda, IntakeTabMedidas:
		return true
	}
	return false
}
