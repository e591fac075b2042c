package parser

// Node structs mirroring the OVC XML vocabulary. Element names are the
// service's own abbreviations (bi = bien inmueble, dt = domicilio
// tributario, debi = datos económicos, loint = localización interna).
// Unknown siblings are ignored by encoding/xml, which keeps the parser
// forward compatible.

// document is decoded from every endpoint's response; the root element name
// varies per operation so it is deliberately left unchecked.
type document struct {
	Errors      []errNode        `xml:"lerr>err"`
	Bico        *bicoNode        `xml:"bico"`
	Listing     *listingNode     `xml:"lrcdnp"`
	Provinciero *provincieroNode `xml:"provinciero"`
	Municipiero *municipieroNode `xml:"municipiero"`
	Callejero   *callejeroNode   `xml:"callejero"`
	Numerero    *numereroNode    `xml:"numerero"`
}

type errNode struct {
	Cod string `xml:"cod"`
	Des string `xml:"des"`
}

type bicoNode struct {
	Bi    *biNode    `xml:"bi"`
	Lcons *lconsNode `xml:"lcons"`
	Lspr  *lsprNode  `xml:"lspr"`
}

type biNode struct {
	Idbi idbiNode  `xml:"idbi"`
	Dt   dtNode    `xml:"dt"`
	Ldt  string    `xml:"ldt"`
	Debi *debiNode `xml:"debi"`
}

type idbiNode struct {
	Cn string `xml:"cn"`
	Rc rcNode `xml:"rc"`
}

type rcNode struct {
	Pc1 string `xml:"pc1"`
	Pc2 string `xml:"pc2"`
	Car string `xml:"car"`
	Cc1 string `xml:"cc1"`
	Cc2 string `xml:"cc2"`
}

type dtNode struct {
	Np   string    `xml:"np"`
	Nm   string    `xml:"nm"`
	Locs *locsNode `xml:"locs"`
}

type locsNode struct {
	Lous *lousNode `xml:"lous"`
	Lors *lorsNode `xml:"lors"`
}

type lousNode struct {
	Lourb *lourbNode `xml:"lourb"`
}

type lourbNode struct {
	Dir   dirNode    `xml:"dir"`
	Loint *lointNode `xml:"loint"`
}

type dirNode struct {
	Cv  string `xml:"cv"`
	Tv  string `xml:"tv"`
	Nv  string `xml:"nv"`
	Pnp string `xml:"pnp"`
}

type lointNode struct {
	Bq string `xml:"bq"`
	Es string `xml:"es"`
	Pt string `xml:"pt"`
	Pu string `xml:"pu"`
}

type lorsNode struct {
	Lorus *lorusNode `xml:"lorus"`
}

type lorusNode struct {
	Cpp *cppNode `xml:"cpp"`
	Npa string   `xml:"npa"`
}

type cppNode struct {
	Cpo string `xml:"cpo"`
	Cpa string `xml:"cpa"`
}

type debiNode struct {
	Luso string `xml:"luso"`
	Sfc  string `xml:"sfc"`
	Cpt  string `xml:"cpt"`
	Ant  string `xml:"ant"`
}

type lconsNode struct {
	Cons []consNode `xml:"cons"`
}

type consNode struct {
	Lcd    string      `xml:"lcd"`
	Dt     *consDtNode `xml:"dt"`
	Dfcons *dfconsNode `xml:"dfcons"`
}

type consDtNode struct {
	Lourb *lourbNode `xml:"lourb"`
}

type dfconsNode struct {
	Stl  string `xml:"stl"`
	Dtip string `xml:"dtip"`
}

type lsprNode struct {
	Spr []sprNode `xml:"spr"`
}

type sprNode struct {
	Cspr string    `xml:"cspr"`
	Dspr *dsprNode `xml:"dspr"`
}

type dsprNode struct {
	Ccc string `xml:"ccc"`
	Dcc string `xml:"dcc"`
	Ip  string `xml:"ip"`
	Ssp string `xml:"ssp"`
}

type listingNode struct {
	Rcdnp []rcdnpNode `xml:"rcdnp"`
}

type rcdnpNode struct {
	Rc rcNode `xml:"rc"`
	Dt dtNode `xml:"dt"`
}

type provincieroNode struct {
	Prov []provNode `xml:"prov"`
}

type provNode struct {
	Cpine string `xml:"cpine"`
	Np    string `xml:"np"`
}

type municipieroNode struct {
	Muni []muniNode `xml:"muni"`
}

type muniNode struct {
	Nm    string     `xml:"nm"`
	Locat *locatNode `xml:"locat"`
	Loine *loineNode `xml:"loine"`
}

type locatNode struct {
	Cd  string `xml:"cd"`
	Cmc string `xml:"cmc"`
}

type loineNode struct {
	Cp string `xml:"cp"`
	Cm string `xml:"cm"`
}

type callejeroNode struct {
	Calle []calleNode `xml:"calle"`
}

type calleNode struct {
	Dir dirNode `xml:"dir"`
}

type numereroNode struct {
	Nump []numpNode `xml:"nump"`
}

type numpNode struct {
	Num numNode `xml:"num"`
	Rc  rcNode  `xml:"rc"`
}

type numNode struct {
	Pnp string `xml:"pnp"`
}
