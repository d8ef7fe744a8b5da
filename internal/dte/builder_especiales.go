package dte

// Special-purpose documents: retention receipt (07), export invoice (11),
// excluded-subject invoice (14) and donation receipt (15).

func (b *Builder) buildRetencion(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	business, ok := cp.(Business)
	if !ok {
		return nil, wrongCounterparty(KindRetencion, "Business")
	}
	if err := requireItems(KindRetencion, items); err != nil {
		return nil, err
	}

	cuerpo := make([]ItemRetencion, 0, len(items))
	var ts, tr float64
	for i, it := range items {
		monto := round2(it.MontoSujeto)
		ivaRet := round2(orDefaultF(it.IVARetenido, monto*0.01))
		cuerpo = append(cuerpo, ItemRetencion{
			NumItem:           i + 1,
			TipoDte:           orDefault(it.TipoDTERef, "03"),
			TipoGeneracion:    orDefaultI(it.TipoGeneracion, 1),
			NumDocumento:      orDefault(it.NumDocumento, "00010001000000001"),
			FechaEmision:      orDefault(it.FechaEmision, bc.fecEmi),
			MontoSujetoGrav:   monto,
			CodigoRetencionMH: orDefault(it.CodigoRetencion, "22"),
			IVARetenido:       ivaRet,
			Descripcion:       orDefault(it.Descripcion, "Retencion IVA"),
		})
		ts += monto
		tr += ivaRet
	}
	ts = round2(ts)
	tr = round2(tr)

	// totalIva must be present and zero; the retained total lives in
	// totalIvaRetenido.
	resumen := ResumenRetencion{
		TotalSujetoRetencion: ts,
		TotalIVARetenido:     tr,
		TotalLetras:          AmountInWords(tr),
		Observaciones:        optStr(bc.opts.Observaciones),
	}

	e := b.issuer
	emisor := EmisorRetencion{
		NIT:             e.NIT,
		NRC:             e.NRC,
		Nombre:          e.Nombre,
		CodActividad:    e.CodActividad,
		DescActividad:   e.DescActividad,
		NombreComercial: optStr(e.NombreComercial),
		Direccion: DireccionDistrito{
			Departamento: e.Departamento,
			Municipio:    e.Municipio,
			Distrito:     orDefault(e.Distrito, "01"),
			Complemento:  e.Complemento,
		},
		Telefono:      e.Telefono,
		Correo:        e.Correo,
		CodEstable:    orDefault(e.CodEstablecimiento, "M001"),
		CodPuntoVenta: orDefault(e.CodPuntoVenta, "P001"),
	}
	receptor := ReceptorRetencion{
		TipoDocumento:   orDefault(business.TipoDocumento, "36"),
		NumDocumento:    orDefault(business.NumDocumento, business.NIT),
		NRC:             optStr(business.NRC),
		Nombre:          business.Nombre,
		NombreComercial: optStr(business.NombreComercial),
		CodActividad:    business.CodActividad,
		DescActividad:   business.DescActividad,
		Direccion: DireccionDistrito{
			Departamento: orDefault(business.Departamento, "06"),
			Municipio:    orDefault(business.Municipio, "20"),
			Distrito:     orDefault(business.Distrito, "01"),
			Complemento:  orDefault(business.Complemento, "San Salvador"),
		},
		Telefono: optStr(business.Telefono),
		Correo:   optStr(business.Correo),
	}
	return &ComprobanteRetencion{
		Identificacion:  b.ident(bc, KindRetencion),
		Emisor:          emisor,
		Receptor:        receptor,
		CuerpoDocumento: cuerpo,
		Resumen:         resumen,
	}, nil
}

func (b *Builder) buildExportacion(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	buyer, ok := cp.(ForeignBuyer)
	if !ok {
		return nil, wrongCounterparty(KindExportacion, "ForeignBuyer")
	}
	if err := requireItems(KindExportacion, items); err != nil {
		return nil, err
	}

	cuerpo := make([]ItemExportacion, 0, len(items))
	var tg float64
	for i, it := range items {
		precio := round2(it.PrecioUnitario)
		cant := orDefaultF(it.Cantidad, 1)
		venta := round2(precio * cant)
		tributos := it.TributosExport
		if len(tributos) == 0 {
			tributos = []string{"C3"}
		}
		cuerpo = append(cuerpo, ItemExportacion{
			NumItem:      i + 1,
			Codigo:       optStr(it.Codigo),
			Cantidad:     cant,
			UniMedida:    orDefaultI(it.UniMedida, 59),
			Descripcion:  it.Descripcion,
			PrecioUni:    precio,
			VentaGravada: venta,
			Tributos:     tributos,
		})
		tg += venta
	}
	tg = round2(tg)

	resumen := ResumenExportacion{
		TotalGravada:        tg,
		MontoTotalOperacion: tg,
		TotalPagar:          tg,
		TotalLetras:         AmountInWords(tg),
		CondicionOperacion:  bc.condicion,
		Pagos:               cashPayment(tg),
		Observaciones:       optStr(bc.opts.Observaciones),
	}
	emisor := EmisorExportacion{
		EmisorEstandar: b.emisorEstandar(),
		TipoItemExpor:  orDefaultI(b.issuer.TipoItemExportacion, 1),
	}
	receptor := ReceptorExportacion{
		TipoDocumento:   orDefault(buyer.TipoDocumento, "37"),
		NumDocumento:    orDefault(buyer.NumDocumento, "000000000"),
		Nombre:          buyer.Nombre,
		NombreComercial: optStr(buyer.NombreComercial),
		CodPais:         orDefault(buyer.CodPais, "9300"),
		NombrePais:      orDefault(buyer.NombrePais, "ESTADOS UNIDOS"),
		Complemento:     orDefault(buyer.Complemento, "Exterior"),
		TipoPersona:     orDefaultI(buyer.TipoPersona, 1),
		DescActividad:   orDefault(buyer.DescActividad, "Actividades varias"),
		Telefono:        optStr(buyer.Telefono),
		Correo:          optStr(buyer.Correo),
	}
	ident := IdentificacionExportacion{
		Version:          KindExportacion.SchemaVersion(),
		Ambiente:         b.ambiente,
		TipoDte:          KindExportacion.String(),
		NumeroControl:    bc.controlNumber,
		CodigoGeneracion: bc.codigoGen,
		TipoModelo:       1,
		TipoOperacion:    1,
		FecEmi:           bc.fecEmi,
		HorEmi:           bc.horEmi,
		TipoMoneda:       "USD",
	}
	return &FacturaExportacion{
		Identificacion:  ident,
		Emisor:          emisor,
		Receptor:        receptor,
		CuerpoDocumento: cuerpo,
		Resumen:         resumen,
	}, nil
}

func (b *Builder) buildSujetoExcluido(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	subject, ok := cp.(ExcludedSubject)
	if !ok {
		return nil, wrongCounterparty(KindSujetoExcluido, "ExcludedSubject")
	}
	if err := requireItems(KindSujetoExcluido, items); err != nil {
		return nil, err
	}

	cuerpo := make([]ItemSujetoExcluido, 0, len(items))
	var tc float64
	for i, it := range items {
		precio := round2(it.PrecioUnitario)
		cant := orDefaultF(it.Cantidad, 1)
		compra := round2(precio * cant)
		cuerpo = append(cuerpo, ItemSujetoExcluido{
			NumItem:     i + 1,
			TipoItem:    orDefaultI(it.TipoItem, 2),
			Codigo:      optStr(it.Codigo),
			Cantidad:    cant,
			UniMedida:   orDefaultI(it.UniMedida, 59),
			Descripcion: it.Descripcion,
			PrecioUni:   precio,
			Compra:      compra,
		})
		tc += compra
	}
	tc = round2(tc)

	// Rent withholding kicks in at $100: 10% of the purchase total.
	var reteRenta float64
	if tc >= 100 {
		reteRenta = round2(tc * 0.10)
	}
	totalPagar := round2(tc - reteRenta)

	resumen := ResumenSujetoExcluido{
		TotalCompra:        tc,
		SubTotal:           tc,
		ReteRenta:          reteRenta,
		TotalPagar:         totalPagar,
		TotalLetras:        AmountInWords(totalPagar),
		CondicionOperacion: bc.condicion,
		Pagos:              cashPayment(totalPagar),
		Observaciones:      optStr(bc.opts.Observaciones),
	}

	e := b.issuer
	estable := orDefault(e.CodEstablecimiento, "M001")
	punto := orDefault(e.CodPuntoVenta, "P001")
	emisor := EmisorSujetoExcluido{
		NIT:             e.NIT,
		NRC:             e.NRC,
		Nombre:          e.Nombre,
		CodActividad:    e.CodActividad,
		DescActividad:   e.DescActividad,
		Direccion:       b.issuerDireccion(),
		Telefono:        e.Telefono,
		Correo:          e.Correo,
		CodEstableMH:    estable,
		CodEstable:      estable,
		CodPuntoVentaMH: punto,
		CodPuntoVenta:   punto,
	}
	sujeto := SujetoExcluidoBlock{
		TipoDocumento: orDefault(subject.TipoDocumento, "13"),
		NumDocumento:  orDefault(subject.NumDocumento, "000000000"),
		Nombre:        subject.Nombre,
		CodActividad:  optStr(subject.CodActividad),
		DescActividad: optStr(subject.DescActividad),
		Direccion: Direccion{
			Departamento: orDefault(subject.Departamento, "06"),
			Municipio:    orDefault(subject.Municipio, "14"),
			Complemento:  orDefault(subject.Complemento, "San Salvador"),
		},
		Telefono: optStr(subject.Telefono),
		Correo:   optStr(subject.Correo),
	}
	return &FacturaSujetoExcluido{
		Identificacion:  b.ident(bc, KindSujetoExcluido),
		Emisor:          emisor,
		SujetoExcluido:  sujeto,
		CuerpoDocumento: cuerpo,
		Resumen:         resumen,
	}, nil
}

func (b *Builder) buildDonacion(bc buildContext, cp Counterparty, items []LineItem) (Document, error) {
	donor, ok := cp.(Donor)
	if !ok {
		return nil, wrongCounterparty(KindDonacion, "Donor")
	}
	if err := requireItems(KindDonacion, items); err != nil {
		return nil, err
	}

	cuerpo := make([]ItemDonacion, 0, len(items))
	var td float64
	for i, it := range items {
		valor := round2(orDefaultF(it.ValorDonacion, orDefaultF(it.PrecioUnitario, 100)))
		cuerpo = append(cuerpo, ItemDonacion{
			NumItem:       i + 1,
			TipoItem:      orDefaultI(it.TipoItem, 1),
			Codigo:        optStr(it.Codigo),
			Cantidad:      orDefaultF(it.Cantidad, 1),
			UniMedida:     99,
			Descripcion:   it.Descripcion,
			ValorDonacion: valor,
		})
		td += valor
	}
	td = round2(td)

	resumen := ResumenDonacion{
		TotalDonacion:      td,
		TotalLetras:        AmountInWords(td),
		CondicionOperacion: bc.condicion,
	}
	donante := Donante{
		TipoDocumento:   orDefault(donor.TipoDocumento, "36"),
		NumDocumento:    donor.NumDocumento,
		NRC:             optStr(donor.NRC),
		Nombre:          donor.Nombre,
		NombreComercial: optStr(donor.NombreComercial),
		CodActividad:    optStr(donor.CodActividad),
		DescActividad:   optStr(donor.DescActividad),
		Direccion: Direccion{
			Departamento: orDefault(donor.Departamento, "06"),
			Municipio:    orDefault(donor.Municipio, "14"),
			Complemento:  orDefault(donor.Complemento, "San Salvador"),
		},
		Telefono: optStr(donor.Telefono),
		Correo:   optStr(donor.Correo),
		CodPais:  orDefault(donor.CodPais, "9300"),
	}
	e := b.issuer
	donatario := Donatario{
		NIT:             e.NIT,
		NRC:             e.NRC,
		Nombre:          e.Nombre,
		NombreComercial: optStr(e.NombreComercial),
		CodActividad:    e.CodActividad,
		DescActividad:   e.DescActividad,
		Direccion:       b.issuerDireccion(),
		Telefono:        e.Telefono,
		Correo:          e.Correo,
		CodEstable:      orDefault(e.CodEstablecimiento, "M001"),
		CodPuntoVenta:   orDefault(e.CodPuntoVenta, "P001"),
	}
	otros := []DonacionDocumento{{
		CodigoDocumento:  "01",
		DescDocumento:    "Acta de donacion",
		DetalleDocumento: "Acta notarial",
	}}
	if bc.opts.Donacion != nil && len(bc.opts.Donacion.OtrosDocumentos) > 0 {
		otros = bc.opts.Donacion.OtrosDocumentos
	}
	return &ComprobanteDonacion{
		Identificacion:  b.ident(bc, KindDonacion),
		Donante:         donante,
		Donatario:       donatario,
		OtrosDocumentos: otros,
		CuerpoDocumento: cuerpo,
		Resumen:         resumen,
		Extension:       b.defaultExtension(bc.opts.Extension),
	}, nil
}
