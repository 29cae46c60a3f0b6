package lib

import (
	"fmt"

	"go.uber.org/zap"
)

// Step records how one source map was placed onto the merge base.
type Step struct {
	Index    int
	Offset   Offset
	Strategy string
}

// Result is a merged map together with how it was produced. Dropped counts
// dies that alignment pushed outside the declared grid and that were
// discarded.
type Result struct {
	Map     *WaferMap
	Steps   []Step
	Dropped int
}

// Merger combines wafer maps. It holds no state between calls, so a single
// Merger may serve concurrent merges.
type Merger struct {
	Logger *zap.Logger
}

func NewMerger(logger *zap.Logger) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Merger{Logger: logger}
}

var defaultMerger = NewMerger(nil)

// MergeTwo merges b onto a. See Merger.MergeTwo.
func MergeTwo(a, b *WaferMap) (*WaferMap, error) {
	r, err := defaultMerger.MergeTwo(a, b)
	if err != nil {
		return nil, err
	}

	return r.Map, nil
}

// MergeControlAndScan overlays the defects of scan onto control. See
// Merger.MergeControlAndScan.
func MergeControlAndScan(control, scan *WaferMap, export bool) (*WaferMap, error) {
	r, err := defaultMerger.MergeControlAndScan(control, scan, export)
	if err != nil {
		return nil, err
	}

	return r.Map, nil
}

// MergeSequence merges maps in order. See Merger.MergeSequence.
func MergeSequence(maps []*WaferMap, export bool, firstIsControl bool) (*WaferMap, error) {
	r, err := defaultMerger.MergeSequence(maps, export, firstIsControl)
	if err != nil {
		return nil, err
	}

	return r.Map, nil
}

/*
	copy of a map used as the starting point of a merge
*/
func seed(base *WaferMap) *WaferMap {
	return base.Clone()
}

/*
	copies one header attribute, dropping it from dst when src lacks it
*/
func take(dst, src Header, key string) {
	if v, ok := src[key]; ok {
		dst[key] = v
	} else {
		delete(dst, key)
	}
}

func (mg *Merger) clip(r *Result) *Result {
	before := len(r.Map.Dies)
	r.Dropped = r.Map.Clip()

	mg.Logger.Debug("validated merged map",
		zap.Int("dies", before),
		zap.Int("kept", before-r.Dropped),
		zap.Int("dropped", r.Dropped),
	)

	return r
}

// MergeTwo aligns b onto a and combines them. Where a has a real die it is
// kept; where a has no die, b's die is used; where a has a null or fail-code
// die, b's die is used only when it is a real one.
// The result carries a's header, bins, reference device and attributes.
func (mg *Merger) MergeTwo(a, b *WaferMap) (*Result, error) {
	offset, strategy, err := DefaultAligner.Align(a, b)
	if err != nil {
		return nil, err
	}

	mg.Logger.Debug("aligned maps",
		zap.String("strategy", strategy),
		zap.Int("dx", offset.DX),
		zap.Int("dy", offset.DY),
	)

	merged := seed(a)
	for c, status := range b.Dies {
		dst := c.Add(offset)

		current, ok := a.Dies[dst]
		if ok && !IsPlaceholder(current) {
			continue
		}
		if ok && IsPlaceholder(status) {
			continue
		}

		merged.Set(dst, status, b.Defects[c].AdditionalInfo)
	}

	/*
		every EF that made it into the grid must be indexed
	*/
	for c, status := range b.Dies {
		if status != Defect {
			continue
		}

		dst := c.Add(offset)
		if merged.Dies[dst] != Defect {
			continue
		}
		if _, ok := merged.Defects[dst]; !ok {
			merged.Set(dst, Defect, b.Defects[c].AdditionalInfo)
		}
	}

	return mg.clip(&Result{
		Map:   merged,
		Steps: []Step{{Index: 1, Offset: offset, Strategy: strategy}},
	}), nil
}

/*
	marks EF dies of src, moved by offset, onto dst wherever dst already
	holds a real die
*/
func overlay(dst, src *WaferMap, offset Offset, info string) int {
	marked := 0
	for c, status := range src.Dies {
		if status != Defect {
			continue
		}

		at := c.Add(offset)
		if !dst.Contains(at) {
			continue
		}

		current, ok := dst.Dies[at]
		if !ok || IsPlaceholder(current) {
			continue
		}

		dst.Set(at, Defect, info)
		marked++
	}

	return marked
}

// MergeControlAndScan builds a map from the control grid and bins, with the
// scan map's header and substrate attributes, and marks the scan map's
// defects on it. Defects never land on null or fail-code positions of the
// control grid. With export set the lot and substrate ids get their Z marker.
func (mg *Merger) MergeControlAndScan(control, scan *WaferMap, export bool) (*Result, error) {
	if ce := mg.Logger.Check(zap.DebugLevel, "control merge"); ce != nil {
		crows, ccols := control.Dims()
		srows, scols := scan.Dims()
		ce.Write(
			zap.Int("control_rows", crows),
			zap.Int("control_cols", ccols),
			zap.Int("scan_rows", srows),
			zap.Int("scan_cols", scols),
			zap.Int("control_test_areas", len(TestDieAreas(control))),
			zap.Int("scan_test_areas", len(TestDieAreas(scan))),
		)
	}

	offset, strategy, err := DefaultAligner.Align(control, scan)
	if err != nil {
		return nil, err
	}

	mg.Logger.Debug("aligned scan to control",
		zap.String("strategy", strategy),
		zap.Int("dx", offset.DX),
		zap.Int("dy", offset.DY),
	)

	merged := seed(control)
	merged.Header = scan.Header.Clone()
	take(merged.Header, control.Header, "Rows")
	take(merged.Header, control.Header, "Columns")
	delete(merged.Header, "ReferenceDeviceX")
	delete(merged.Header, "ReferenceDeviceY")
	merged.Attributes = scan.Attributes

	marked := overlay(merged, scan, offset, "Defect from scan map")
	mg.Logger.Debug("overlaid scan defects", zap.Int("marked", marked))

	if export {
		merged = merged.WithExportIDs()
	}

	return mg.clip(&Result{
		Map:   merged,
		Steps: []Step{{Index: 1, Offset: offset, Strategy: strategy}},
	}), nil
}

// MergeSequence starts from the first map and, for each following map,
// realigns it against the merge so far and marks its defects. With
// firstIsControl the product id, lot id and substrate attributes come from
// the second map.
func (mg *Merger) MergeSequence(maps []*WaferMap, export bool, firstIsControl bool) (*Result, error) {
	if len(maps) < 2 {
		return nil, &InputError{Reason: fmt.Sprintf("at least 2 maps are required for merging, got %d", len(maps))}
	}

	mg.Logger.Debug("merging maps in sequence", zap.Int("maps", len(maps)))

	merged := seed(maps[0])
	if firstIsControl {
		take(merged.Header, maps[1].Header, "ProductId")
		take(merged.Header, maps[1].Header, "LotId")
		merged.Attributes = maps[1].Attributes
	}

	steps := make([]Step, 0, len(maps)-1)
	for i := 1; i < len(maps); i++ {
		offset, strategy, err := TestDieAligner.Align(merged, maps[i])
		if err != nil {
			return nil, fmt.Errorf("map %d: %w", i+1, err)
		}

		marked := overlay(merged, maps[i], offset, fmt.Sprintf("Defect from map %d", i+1))
		mg.Logger.Debug("merged map",
			zap.Int("map", i+1),
			zap.String("strategy", strategy),
			zap.Int("dx", offset.DX),
			zap.Int("dy", offset.DY),
			zap.Int("marked", marked),
		)

		steps = append(steps, Step{Index: i, Offset: offset, Strategy: strategy})
	}

	if export {
		merged = merged.WithExportIDs()
	}

	return mg.clip(&Result{Map: merged, Steps: steps}), nil
}
