package dte

import (
	"fmt"
	"math"
	"strconv"
)

// AmountInWords renders a dollar amount as the legally mandated Spanish text
// for the totalLetras field, e.g. 169.50 -> "CIENTO SESENTA Y NUEVE 50/100
// DOLARES". Wording is a compliance requirement: the exact strings below were
// accepted during MH certification and must not change casually.
func AmountInWords(amount float64) string {
	entero := int(amount)
	centavos := int(math.Round((amount - float64(entero)) * 100))
	return fmt.Sprintf("%s %02d/100 DOLARES", numberWords(entero), centavos)
}

var unidades = [10]string{"", "UN", "DOS", "TRES", "CUATRO", "CINCO",
	"SEIS", "SIETE", "OCHO", "NUEVE"}

var decenas = [10]string{"", "DIEZ", "VEINTE", "TREINTA", "CUARENTA", "CINCUENTA",
	"SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}

var especiales = map[int]string{
	11: "ONCE", 12: "DOCE", 13: "TRECE", 14: "CATORCE", 15: "QUINCE",
	16: "DIECISEIS", 17: "DIECISIETE", 18: "DIECIOCHO", 19: "DIECINUEVE",
}

func numberWords(n int) string {
	switch {
	case n == 0:
		return "CERO"
	case n < 10:
		return unidades[n]
	}
	if s, ok := especiales[n]; ok {
		return s
	}
	switch {
	case n < 20:
		return "DIECI" + unidades[n-10]
	case n < 100:
		d, u := n/10, n%10
		if n == 21 {
			return "VEINTIUN"
		}
		if n > 21 && n < 30 {
			return "VEINTI" + unidades[u]
		}
		if u == 0 {
			return decenas[d]
		}
		return decenas[d] + " Y " + unidades[u]
	case n < 1000:
		c, r := n/100, n%100
		if n == 100 {
			return "CIEN"
		}
		var p string
		switch c {
		case 1:
			p = "CIENTO"
		case 5:
			p = "QUINIENTOS"
		case 7:
			p = "SETECIENTOS"
		case 9:
			p = "NOVECIENTOS"
		default:
			p = unidades[c] + "CIENTOS"
		}
		if r == 0 {
			return p
		}
		return p + " " + numberWords(r)
	case n < 1000000:
		m, r := n/1000, n%1000
		p := "MIL"
		if m > 1 {
			p = numberWords(m) + " MIL"
		}
		if r == 0 {
			return p
		}
		return p + " " + numberWords(r)
	}
	return strconv.Itoa(n)
}
