package dte

// Adjustment notes (05, 06). Both share the note item shape and the
// establishment-less emisor; the credit note carries its amounts negated so
// that summing a sale and its reversal nets to zero, while the debit note
// charges positive amounts on top of the referenced document.

type noteBody struct {
	cuerpo []ItemNota
	tg     float64
	iva    float64
	mt     float64
	docRel []DocumentoRelacionado
}

func (b *Builder) noteBody(bc buildContext, items []LineItem) noteBody {
	ref := bc.opts.Referencia
	var refCode *string
	if ref != nil {
		refCode = optStr(ref.CodigoGeneracion)
	}
	cuerpo := make([]ItemNota, 0, len(items))
	var tg float64
	for i, it := range items {
		precio := round2(it.PrecioUnitario)
		cant := orDefaultF(it.Cantidad, 1)
		vg := round2(precio * cant)
		var tributos []string
		if vg > 0 {
			tributos = []string{ivaTributeCode}
		}
		cuerpo = append(cuerpo, ItemNota{
			NumItem:         i + 1,
			TipoItem:        orDefaultI(it.TipoItem, 2),
			NumeroDocumento: refCode,
			Codigo:          optStr(it.Codigo),
			Cantidad:        cant,
			UniMedida:       orDefaultI(it.UniMedida, 59),
			Descripcion:     it.Descripcion,
			PrecioUni:       precio,
			VentaGravada:    vg,
			Tributos:        tributos,
		})
		tg += vg
	}
	tg = round2(tg)
	iva := round2(tg * ivaRate)
	mt := round2(tg + iva)

	var docRel []DocumentoRelacionado
	if ref != nil {
		docRel = []DocumentoRelacionado{{
			TipoDocumento:   orDefault(ref.TipoDTE, "03"),
			TipoGeneracion:  orDefaultI(ref.TipoGeneracion, 2),
			NumeroDocumento: ref.CodigoGeneracion,
			FechaEmision:    orDefault(ref.FechaEmision, bc.fecEmi),
		}}
	}
	return noteBody{cuerpo: cuerpo, tg: tg, iva: iva, mt: mt, docRel: docRel}
}

func (b *Builder) emisorNota() EmisorNota {
	e := b.issuer
	return EmisorNota{
		NIT:                 e.NIT,
		NRC:                 e.NRC,
		Nombre:              e.Nombre,
		CodActividad:        e.CodActividad,
		DescActividad:       e.DescActividad,
		NombreComercial:     optStr(e.NombreComercial),
		TipoEstablecimiento: orDefault(e.TipoEstablecimiento, "01"),
		Direccion:           b.issuerDireccion(),
		Telefono:            e.Telefono,
		Correo:              e.Correo,
	}
}

func (b *Builder) buildNotaCredito(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	business, ok := cp.(Business)
	if !ok {
		return nil, wrongCounterparty(KindNotaCredito, "Business")
	}
	if err := requireItems(KindNotaCredito, items); err != nil {
		return nil, err
	}

	nb := b.noteBody(bc, items)
	for i := range nb.cuerpo {
		nb.cuerpo[i].VentaGravada = -nb.cuerpo[i].VentaGravada
	}
	resumen := ResumenNotaCredito{
		TotalGravada:        -nb.tg,
		SubTotalVentas:      -nb.tg,
		Tributos:            ivaTributos(-nb.iva),
		SubTotal:            -nb.tg,
		MontoTotalOperacion: -nb.mt,
		TotalLetras:         AmountInWords(nb.mt),
		CondicionOperacion:  bc.condicion,
	}
	return &NotaCredito{
		Identificacion:       b.ident(bc, KindNotaCredito),
		DocumentoRelacionado: nb.docRel,
		Emisor:               b.emisorNota(),
		Receptor:             receptorCCF(business),
		CuerpoDocumento:      nb.cuerpo,
		Resumen:              resumen,
		Extension:            bc.opts.Extension,
	}, nil
}

func (b *Builder) buildNotaDebito(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	business, ok := cp.(Business)
	if !ok {
		return nil, wrongCounterparty(KindNotaDebito, "Business")
	}
	if err := requireItems(KindNotaDebito, items); err != nil {
		return nil, err
	}

	nb := b.noteBody(bc, items)
	resumen := ResumenNotaDebito{
		TotalGravada:        nb.tg,
		SubTotalVentas:      nb.tg,
		Tributos:            ivaTributos(nb.iva),
		SubTotal:            nb.tg,
		MontoTotalOperacion: nb.mt,
		TotalLetras:         AmountInWords(nb.mt),
		CondicionOperacion:  bc.condicion,
	}
	return &NotaDebito{
		Identificacion:       b.ident(bc, KindNotaDebito),
		DocumentoRelacionado: nb.docRel,
		Emisor:               b.emisorNota(),
		Receptor:             receptorCCF(business),
		CuerpoDocumento:      nb.cuerpo,
		Resumen:              resumen,
		Extension:            bc.opts.Extension,
	}, nil
}
