package libknot

import (
	"encoding/binary"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/knot-systems/knot.SDK/goknot"
)

// ToDowker derives the Dowker-Thistlethwaite code: for each odd arc label
// 1, 3, ..., 2n-1 in ascending order, locate the crossing containing it and
// emit that crossing's even-arc partner, negated when the crossing sign is.
//
// The partner is resolved by the traversal-visit convention (the incoming
// under-strand and the incoming side of the over-strand pair at a crossing
// are the two labels under which the traversal visits it).  Diagrams whose
// labeling defeats that convention fall back to the first even arc in the
// first crossing containing the odd label, keeping derivation total and
// deterministic on kinks and other degenerate inputs.
func (d *PlanarDiagram) ToDowker() (goknot.DTCode, error) {
	n := len(d.Crossings)
	dt := make(goknot.DTCode, 0, n)
	ring := int64(2 * n)

	for k := int64(1); k < ring; k += 2 {
		partner, err := d.dowkerPartner(k, ring)
		if err != nil {
			return nil, err
		}
		dt = append(dt, partner)
	}
	return dt, nil
}

func (d *PlanarDiagram) dowkerPartner(k, ring int64) (int64, error) {

	// First look for the crossing that the traversal visits under label k.
	for _, x := range d.Crossings {
		if !x.Contains(k) {
			continue
		}
		if p, ok := x.visitPartner(k, ring); ok && p%2 == 0 {
			return p * int64(x.Sign), nil
		}
	}

	// Fall back to the first even arc in the first crossing containing k.
	found := false
	for _, x := range d.Crossings {
		if !x.Contains(k) {
			continue
		}
		found = true
		for _, arc := range [4]int64{x.A, x.B, x.C, x.D} {
			if arc%2 == 0 {
				return arc * int64(x.Sign), nil
			}
		}
	}

	if found {
		return 0, errors.Wrapf(goknot.ErrMalformedDiagram, "no even partner for arc %d", k)
	}
	return 0, errors.Wrapf(goknot.ErrMalformedDiagram, "arc %d absent from every crossing", k)
}

// visitPartner returns the other traversal-visit label of this crossing when
// arc is one of the two.  The incoming side of the over-strand pair (B, D) is
// the one whose ring successor is the other.
func (x Crossing) visitPartner(arc, ring int64) (int64, bool) {
	overIn := int64(-1)
	if x.D == ringSucc(x.B, ring) {
		overIn = x.B
	} else if x.B == ringSucc(x.D, ring) {
		overIn = x.D
	}
	if overIn < 0 {
		return 0, false
	}
	if x.A == arc {
		return overIn, true
	}
	if overIn == arc {
		return x.A, true
	}
	return 0, false
}

func ringSucc(arc, ring int64) int64 {
	if arc == ring {
		return 1
	}
	return arc + 1
}

// DT returns the stored Dowker-Thistlethwaite code when present, else derives
// one from the planar diagram.
func (k *Knot) DT() (goknot.DTCode, error) {
	if k.Dowker != nil {
		return k.Dowker, nil
	}
	if k.PD != nil {
		return k.PD.ToDowker()
	}
	return nil, goknot.ErrMissingRepresentation
}

// knotWire is the JSON wire form: {name, pd, components, dt} with absent
// representations omitted entirely, never written as null.
type knotWire struct {
	Name       string          `json:"name"`
	PD         json.RawMessage `json:"pd,omitempty"`
	Components json.RawMessage `json:"components,omitempty"`
	DT         json.RawMessage `json:"dt,omitempty"`
}

// EncodeKnot serializes k to its JSON wire form.
func EncodeKnot(k *Knot) ([]byte, error) {
	if k == nil {
		return nil, goknot.ErrNilKnot
	}
	wire := knotWire{
		Name: k.Label(),
	}

	if k.PD != nil {
		rows := make([][5]int64, 0, len(k.PD.Crossings))
		for _, x := range k.PD.Crossings {
			rows = append(rows, x.Tuple())
		}
		pd, err := json.Marshal(rows)
		if err != nil {
			return nil, err
		}
		wire.PD = pd

		comps := make([][]int64, len(k.PD.Components))
		for i, comp := range k.PD.Components {
			if comp == nil {
				comps[i] = []int64{}
			} else {
				comps[i] = comp
			}
		}
		compJSON, err := json.Marshal(comps)
		if err != nil {
			return nil, err
		}
		wire.Components = compJSON
	}

	if k.Dowker != nil {
		dt, err := json.Marshal([]int64(k.Dowker))
		if err != nil {
			return nil, err
		}
		wire.DT = dt
	}

	return json.Marshal(&wire)
}

// DecodeKnot is the exact inverse of EncodeKnot.  An absent name decodes to
// "unnamed"; absent pd/dt keys decode to the corresponding representation
// being absent.
func DecodeKnot(data []byte) (*Knot, error) {
	var wire knotWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrapf(goknot.ErrUnmarshal, "decoding knot json: %v", err)
	}

	name := wire.Name
	if name == "" {
		name = "unnamed"
	}
	k := &Knot{Name: name}

	if wire.PD != nil {
		var rows [][]int64
		if err := json.Unmarshal(wire.PD, &rows); err != nil {
			return nil, errors.Wrapf(goknot.ErrUnmarshal, "decoding pd: %v", err)
		}
		crossings := make([]Crossing, 0, len(rows))
		for _, row := range rows {
			if len(row) != 5 {
				return nil, errors.Wrapf(goknot.ErrUnmarshal, "pd entry has %d fields, expected 5", len(row))
			}
			crossings = append(crossings, NewCrossing(row[0], row[1], row[2], row[3], row[4]))
		}

		var comps [][]int64
		if wire.Components != nil {
			if err := json.Unmarshal(wire.Components, &comps); err != nil {
				return nil, errors.Wrapf(goknot.ErrUnmarshal, "decoding components: %v", err)
			}
		}
		k.PD = &PlanarDiagram{Crossings: crossings, Components: comps}
	}

	if wire.DT != nil {
		var dt []int64
		if err := json.Unmarshal(wire.DT, &dt); err != nil {
			return nil, errors.Wrapf(goknot.ErrUnmarshal, "decoding dt: %v", err)
		}
		k.Dowker = goknot.DTCode(dt)
	}

	return k, nil
}

// MarshalWire appends this knot's JSON wire form.
func (k *Knot) MarshalWire(out []byte) ([]byte, error) {
	data, err := EncodeKnot(k)
	if err != nil {
		return nil, err
	}
	return append(out, data...), nil
}

// AppendCanonicTo appends the canonical identity encoding used for catalog
// keys and dupe detection: the DT spec when a code is stored or derivable,
// else a full diagram encoding.
func (k *Knot) AppendCanonicTo(out []byte) ([]byte, error) {
	if dt, err := k.DT(); err == nil {
		out = append(out, 'D')
		return dt.AppendDTSpecTo(out), nil
	}
	if k.PD == nil {
		return nil, goknot.ErrMissingRepresentation
	}

	var scrap [binary.MaxVarintLen64]byte
	putVar := func(v int64) {
		n := binary.PutVarint(scrap[:], v)
		out = append(out, scrap[:n]...)
	}

	out = append(out, 'P')
	putVar(int64(len(k.PD.Crossings)))
	for _, x := range k.PD.Crossings {
		putVar(x.A)
		putVar(x.B)
		putVar(x.C)
		putVar(x.D)
		putVar(int64(x.Sign))
	}
	putVar(int64(len(k.PD.Components)))
	for _, comp := range k.PD.Components {
		putVar(int64(len(comp)))
		for _, arc := range comp {
			putVar(arc)
		}
	}
	return out, nil
}

// WriteKnotFile persists a knot's JSON wire form, creating or truncating path.
func WriteKnotFile(path string, k *Knot) error {
	data, err := EncodeKnot(k)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return errors.Wrapf(werr, "writing %s", path)
	}
	if cerr != nil {
		return errors.Wrapf(cerr, "closing %s", path)
	}
	return nil
}

// ReadKnotFile reads a knot from its JSON wire form at path.
func ReadKnotFile(path string) (*Knot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return DecodeKnot(data)
}
