package domain

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Percentage é um percentual que pode estar indefinido (divisão por zero).
// Indefinido serializa como null e nunca vira 0 silenciosamente.
type Percentage struct {
	value   float64
	defined bool
}

func NewPercentage(v float64) Percentage {
	return Percentage{value: v, defined: true}
}

func UndefinedPercentage() Percentage {
	return Percentage{}
}

func (p Percentage) IsDefined() bool {
	return p.defined
}

func (p Percentage) Value() (float64, bool) {
	return p.value, p.defined
}

// Float64 retorna NaN quando o percentual está indefinido
func (p Percentage) Float64() float64 {
	if !p.defined {
		return math.NaN()
	}
	return p.value
}

// Sub retorna p - other, indefinido se qualquer um dos lados for indefinido
func (p Percentage) Sub(other Percentage) Percentage {
	if !p.defined || !other.defined {
		return UndefinedPercentage()
	}
	return NewPercentage(p.value - other.value)
}

func (p Percentage) String() string {
	if !p.defined {
		return "sem dados"
	}
	return fmt.Sprintf("%.2f%%", p.value)
}

func (p Percentage) MarshalJSON() ([]byte, error) {
	if !p.defined {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(p.value, 'f', -1, 64)), nil
}

func (p *Percentage) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = UndefinedPercentage()
		return nil
	}

	v, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return fmt.Errorf("percentual inválido %q: %w", data, err)
	}

	*p = NewPercentage(v)
	return nil
}
