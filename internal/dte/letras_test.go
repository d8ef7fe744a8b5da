package dte

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "CERO 00/100 DOLARES"},
		{1, "UN 00/100 DOLARES"},
		{15.75, "QUINCE 75/100 DOLARES"},
		{16, "DIECISEIS 00/100 DOLARES"},
		{21, "VEINTIUN 00/100 DOLARES"},
		{22.01, "VEINTIDOS 01/100 DOLARES"},
		{30, "TREINTA 00/100 DOLARES"},
		{45.5, "CUARENTA Y CINCO 50/100 DOLARES"},
		{100, "CIEN 00/100 DOLARES"},
		{113, "CIENTO TRECE 00/100 DOLARES"},
		{169.5, "CIENTO SESENTA Y NUEVE 50/100 DOLARES"},
		{500, "QUINIENTOS 00/100 DOLARES"},
		{715, "SETECIENTOS QUINCE 00/100 DOLARES"},
		{940, "NOVECIENTOS CUARENTA 00/100 DOLARES"},
		{300, "TRESCIENTOS 00/100 DOLARES"},
		{1000, "MIL 00/100 DOLARES"},
		{1130, "MIL CIENTO TREINTA 00/100 DOLARES"},
		{25000.99, "VEINTICINCO MIL 99/100 DOLARES"},
		{999999, "NOVECIENTOS NOVENTA Y NUEVE MIL NOVECIENTOS NOVENTA Y NUEVE 00/100 DOLARES"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AmountInWords(tc.amount), "amount %v", tc.amount)
	}
}
