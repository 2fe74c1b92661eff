package enum

// PaymentMethod is how a sale payment or order advance was made.
type PaymentMethod string

const (
	PaymentMethodEfectivo      PaymentMethod = "efectivo"
	PaymentMethodTransferencia PaymentMethod = "transferencia"
	PaymentMethodTarjeta       PaymentMethod = "tarjeta"
	PaymentMethodOtro          PaymentMethod = "otro"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodEfectivo, PaymentMethodTransferencia, PaymentMethodTarjeta, PaymentMethodOtro:
		return true
	}
	return false
}
