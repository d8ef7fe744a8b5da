package dte

// Settlement documents (08, 09), issued by commission agents toward their
// principals. The 09 body is derived entirely from the operated value: the
// taxable base comes out of the IVA-inclusive total, perception is 2% of the
// base, and the commission plus its own IVA and the perception are deducted
// to reach the net payable.

func (b *Builder) buildLiquidacion(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	business, ok := cp.(Business)
	if !ok {
		return nil, wrongCounterparty(KindLiquidacion, "Business")
	}
	if err := requireItems(KindLiquidacion, items); err != nil {
		return nil, err
	}

	ref := bc.opts.Referencia
	refTipo, refGen, refCode, refFecha := "03", 1, "00010001000000001", bc.fecEmi
	if ref != nil {
		refTipo = orDefault(ref.TipoDTE, refTipo)
		refGen = orDefaultI(ref.TipoGeneracion, refGen)
		refCode = orDefault(ref.CodigoGeneracion, refCode)
		refFecha = orDefault(ref.FechaEmision, refFecha)
	}

	cuerpo := make([]ItemLiquidacion, 0, len(items))
	var tg, iva float64
	for i, it := range items {
		vg := round2(it.PrecioUnitario * orDefaultF(it.Cantidad, 1))
		ivaItem := round2(vg * ivaRate)
		var tributos []string
		if vg > 0 {
			tributos = []string{ivaTributeCode}
		}
		cuerpo = append(cuerpo, ItemLiquidacion{
			NumItem:         i + 1,
			TipoDte:         refTipo,
			TipoGeneracion:  refGen,
			NumeroDocumento: refCode,
			FechaGeneracion: refFecha,
			VentaGravada:    vg,
			Tributos:        tributos,
			IVAItem:         ivaItem,
			ObsItem:         orDefault(it.Descripcion, "Liquidacion"),
		})
		tg += vg
		iva += ivaItem
	}
	tg = round2(tg)
	iva = round2(iva)
	mt := round2(tg + iva)

	resumen := ResumenLiquidacion{
		TotalGravada:        tg,
		SubTotalVentas:      tg,
		Tributos:            ivaTributos(iva),
		MontoTotalOperacion: mt,
		Total:               mt,
		TotalLetras:         AmountInWords(mt),
		CondicionOperacion:  bc.condicion,
	}
	return &ComprobanteLiquidacion{
		Identificacion:  b.identBasica(bc, KindLiquidacion),
		Emisor:          b.emisorEstandar(),
		Receptor:        receptorCCF(business),
		CuerpoDocumento: cuerpo,
		Resumen:         resumen,
		Extension:       bc.opts.Extension,
	}, nil
}

func (b *Builder) buildLiquidacionContable(bc buildContext, cp Counterparty) (Document, error) {
	business, ok := cp.(Business)
	if !ok {
		return nil, wrongCounterparty(KindLiquidacionContable, "Business")
	}

	var params LiquidacionParams
	if bc.opts.Liquidacion != nil {
		params = *bc.opts.Liquidacion
	}
	valOp := round2(orDefaultF(params.ValorOperaciones, 1130.0))
	base := round2(valOp / (1 + ivaRate))
	iva := round2(valOp - base)
	percepcion := round2(base * 0.02)
	pct := orDefaultF(params.PorcentajeComision, 5)
	comision := round2(valOp * pct / 100)
	ivaComision := round2(comision * ivaRate)
	liquido := round2(valOp - comision - ivaComision - percepcion)

	cuerpo := CuerpoLiquidacionContable{
		PeriodoLiquidacionFechaInicio: orDefault(params.FechaInicio, bc.fecEmi),
		PeriodoLiquidacionFechaFin:    orDefault(params.FechaFin, bc.fecEmi),
		CodLiquidacion:                orDefault(params.Codigo, "LIQ-0001"),
		CantidadDoc:                   orDefaultI(params.CantidadDocs, 10),
		ValorOperaciones:              valOp,
		SubTotal:                      valOp,
		IVA:                           iva,
		MontoSujetoPercepcion:         base,
		IVAPercibido:                  percepcion,
		Comision:                      comision,
		PorcentComision:               round2(pct),
		IVAComision:                   ivaComision,
		LiquidoAPagar:                 liquido,
		TotalLetras:                   AmountInWords(liquido),
		Observaciones:                 optStr(bc.opts.Observaciones),
	}

	e := b.issuer
	estable := orDefault(e.CodEstablecimiento, "M001")
	punto := orDefault(e.CodPuntoVenta, "P001")
	emisor := EmisorLiquidacionContable{
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
		CodigoMH:            estable,
		Codigo:              estable,
		PuntoVentaMH:        punto,
		PuntoVentaContri:    punto,
	}
	receptor := ReceptorLiquidacionContable{
		ReceptorCCF:         receptorCCF(business),
		TipoEstablecimiento: orDefault(business.TipoEstablecimiento, "01"),
		CodigoMH:            optStr(business.CodigoMH),
		PuntoVentaMH:        optStr(business.PuntoVentaMH),
	}
	return &DocumentoLiquidacionContable{
		Identificacion:  b.identBasica(bc, KindLiquidacionContable),
		Emisor:          emisor,
		Receptor:        receptor,
		CuerpoDocumento: cuerpo,
		Extension:       b.defaultExtension(bc.opts.Extension),
	}, nil
}

// defaultExtension fills the delivery block with the issuer's own identity
// for the kinds where the schema requires one.
func (b *Builder) defaultExtension(ext *Extension) *Extension {
	if ext != nil {
		return ext
	}
	return &Extension{
		NombEntrega: strPtr(b.issuer.Nombre),
		DocuEntrega: strPtr(b.issuer.NIT),
	}
}
