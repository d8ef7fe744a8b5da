package dte

// Sale documents: factura (01), CCF (03), nota de remisión (04).
//
// The factura prices are IVA-inclusive, so per-item tax is extracted from the
// gross amount (vg - vg/1.13) rather than added on top, and the operation
// total equals the gross. The CCF adds the 13% on top at the resumen.

func (b *Builder) buildFactura(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	consumer, ok := cp.(Consumer)
	if !ok {
		return nil, wrongCounterparty(KindFactura, "Consumer")
	}
	if err := requireItems(KindFactura, items); err != nil {
		return nil, err
	}

	cuerpo := make([]ItemFactura, 0, len(items))
	var tg, ti float64
	for i, it := range items {
		precio := round2(it.PrecioUnitario)
		cant := orDefaultF(it.Cantidad, 1)
		vg := round2(precio * cant)
		ivaItem := round2(vg - vg/(1+ivaRate))
		cuerpo = append(cuerpo, ItemFactura{
			NumItem:      i + 1,
			TipoItem:     orDefaultI(it.TipoItem, 2),
			Codigo:       optStr(it.Codigo),
			Cantidad:     cant,
			UniMedida:    orDefaultI(it.UniMedida, 59),
			Descripcion:  it.Descripcion,
			PrecioUni:    precio,
			MontoDescu:   round2(it.Descuento),
			VentaGravada: vg,
			IVAItem:      ivaItem,
		})
		tg += vg
		ti += ivaItem
	}
	tg = round2(tg)
	ti = round2(ti)

	resumen := ResumenFactura{
		TotalGravada:        tg,
		SubTotalVentas:      tg,
		SubTotal:            tg,
		MontoTotalOperacion: tg,
		TotalPagar:          tg,
		TotalLetras:         AmountInWords(tg),
		TotalIVA:            ti,
		CondicionOperacion:  bc.condicion,
		Pagos:               cashPayment(tg),
	}
	return &Factura{
		Identificacion:  b.ident(bc, KindFactura),
		Emisor:          b.emisorEstandar(),
		Receptor:        receptorFactura(consumer),
		CuerpoDocumento: cuerpo,
		Resumen:         resumen,
		Extension:       bc.opts.Extension,
	}, nil
}

func (b *Builder) buildCCF(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	business, ok := cp.(Business)
	if !ok {
		return nil, wrongCounterparty(KindCCF, "Business")
	}
	if err := requireItems(KindCCF, items); err != nil {
		return nil, err
	}

	cuerpo := make([]ItemCCF, 0, len(items))
	var tg float64
	for i, it := range items {
		precio := round2(it.PrecioUnitario)
		cant := orDefaultF(it.Cantidad, 1)
		vg := round2(precio * cant)
		var tributos []string
		if vg > 0 {
			tributos = []string{ivaTributeCode}
		}
		cuerpo = append(cuerpo, ItemCCF{
			NumItem:      i + 1,
			TipoItem:     orDefaultI(it.TipoItem, 2),
			Codigo:       optStr(it.Codigo),
			Cantidad:     cant,
			UniMedida:    orDefaultI(it.UniMedida, 59),
			Descripcion:  it.Descripcion,
			PrecioUni:    precio,
			MontoDescu:   round2(it.Descuento),
			VentaGravada: vg,
			Tributos:     tributos,
		})
		tg += vg
	}
	tg = round2(tg)
	iva := round2(tg * ivaRate)
	mt := round2(tg + iva)

	resumen := ResumenCCF{
		TotalGravada:        tg,
		SubTotalVentas:      tg,
		Tributos:            ivaTributos(iva),
		SubTotal:            tg,
		MontoTotalOperacion: mt,
		TotalPagar:          mt,
		TotalLetras:         AmountInWords(mt),
		CondicionOperacion:  bc.condicion,
		Pagos:               cashPayment(mt),
	}
	return &CCF{
		Identificacion:  b.ident(bc, KindCCF),
		Emisor:          b.emisorEstandar(),
		Receptor:        receptorCCF(business),
		CuerpoDocumento: cuerpo,
		Resumen:         resumen,
		Extension:       bc.opts.Extension,
	}, nil
}

func (b *Builder) buildNotaRemision(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	consumer, ok := cp.(Consumer)
	if !ok {
		return nil, wrongCounterparty(KindNotaRemision, "Consumer")
	}
	if err := requireItems(KindNotaRemision, items); err != nil {
		return nil, err
	}

	cuerpo := make([]ItemRemision, 0, len(items))
	var tg float64
	for i, it := range items {
		precio := round2(it.PrecioUnitario)
		cant := orDefaultF(it.Cantidad, 1)
		vg := round2(precio * cant)
		var tributos []string
		if vg > 0 {
			tributos = []string{ivaTributeCode}
		}
		cuerpo = append(cuerpo, ItemRemision{
			NumItem:      i + 1,
			TipoItem:     orDefaultI(it.TipoItem, 2),
			Codigo:       optStr(it.Codigo),
			Descripcion:  it.Descripcion,
			Cantidad:     cant,
			UniMedida:    orDefaultI(it.UniMedida, 59),
			PrecioUni:    precio,
			VentaGravada: vg,
			Tributos:     tributos,
		})
		tg += vg
	}
	tg = round2(tg)
	iva := round2(tg * ivaRate)
	mt := round2(tg + iva)

	resumen := ResumenRemision{
		TotalGravada:        tg,
		SubTotalVentas:      tg,
		Tributos:            ivaTributos(iva),
		SubTotal:            tg,
		MontoTotalOperacion: mt,
		TotalLetras:         AmountInWords(mt),
	}
	receptor := ReceptorRemision{
		TipoDocumento: orDefault(consumer.TipoDocumento, "36"),
		NumDocumento:  consumer.NumDocumento,
		NRC:           optStr(consumer.NRC),
		Nombre:        consumer.Nombre,
		CodActividad:  optStr(consumer.CodActividad),
		DescActividad: optStr(consumer.DescActividad),
		Direccion:     consumerDireccion(consumer),
		Telefono:      optStr(consumer.Telefono),
		Correo:        optStr(consumer.Correo),
		BienTitulo:    orDefault(consumer.BienTitulo, "04"),
	}
	return &NotaRemision{
		Identificacion:  b.ident(bc, KindNotaRemision),
		Emisor:          b.emisorEstandar(),
		Receptor:        receptor,
		CuerpoDocumento: cuerpo,
		Resumen:         resumen,
		Extension:       bc.opts.Extension,
	}, nil
}
