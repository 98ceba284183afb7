package scoring

import (
	"math"
	"sort"

	"fashionTrends/domain"
)

// UserItemMatrix is the dense user x item interaction-weight matrix. Rows and
// columns are sorted by ID so a given log always produces the same layout.
// It is rebuilt from the full log on every scoring call and never cached.
type UserItemMatrix struct {
	Users []uint
	Items []uint64
	Rows  [][]float64

	userIndex map[uint]int
	itemIndex map[uint64]int
}

// BuildUserItemMatrix sums undecayed interaction weights per (user, item)
// pair and pivots them into a dense matrix with missing cells at 0. An empty
// log yields an empty matrix, which callers treat as "no collaborative
// signal", not an error.
func BuildUserItemMatrix(interactions []domain.UserInteraction) *UserItemMatrix {
	if len(interactions) == 0 {
		return &UserItemMatrix{}
	}

	type cell struct {
		userID uint
		itemID uint64
	}

	sums := make(map[cell]float64)
	userSet := make(map[uint]struct{})
	itemSet := make(map[uint64]struct{})

	for _, i := range interactions {
		sums[cell{i.UserID, i.ItemID}] += InteractionWeight(i)
		userSet[i.UserID] = struct{}{}
		itemSet[i.ItemID] = struct{}{}
	}

	m := &UserItemMatrix{
		Users:     make([]uint, 0, len(userSet)),
		Items:     make([]uint64, 0, len(itemSet)),
		userIndex: make(map[uint]int, len(userSet)),
		itemIndex: make(map[uint64]int, len(itemSet)),
	}

	for userID := range userSet {
		m.Users = append(m.Users, userID)
	}
	for itemID := range itemSet {
		m.Items = append(m.Items, itemID)
	}
	sort.Slice(m.Users, func(i, j int) bool { return m.Users[i] < m.Users[j] })
	sort.Slice(m.Items, func(i, j int) bool { return m.Items[i] < m.Items[j] })

	for idx, userID := range m.Users {
		m.userIndex[userID] = idx
	}
	for idx, itemID := range m.Items {
		m.itemIndex[itemID] = idx
	}

	m.Rows = make([][]float64, len(m.Users))
	for idx := range m.Rows {
		m.Rows[idx] = make([]float64, len(m.Items))
	}
	for c, weight := range sums {
		m.Rows[m.userIndex[c.userID]][m.itemIndex[c.itemID]] = weight
	}

	return m
}

func (m *UserItemMatrix) Empty() bool {
	return m == nil || len(m.Users) == 0
}

// UserRow returns the weight vector for a user, or false when the user has no
// interactions in the log.
func (m *UserItemMatrix) UserRow(userID uint) ([]float64, bool) {
	if m.Empty() {
		return nil, false
	}

	idx, ok := m.userIndex[userID]
	if !ok {
		return nil, false
	}

	return m.Rows[idx], true
}

// ItemFeatureMatrix is the standardized item x feature matrix used by
// content-based filtering. The seven columns are label-encoded
// category/style/color/brand/season, the price bucket and the trending
// score. Label codes are assigned per build and are an internal intermediate
// only; they are meaningless across calls and never exposed externally.
type ItemFeatureMatrix struct {
	ItemIDs []uint64
	Rows    [][]float64

	index map[uint64]int
}

const featureColumns = 7

// labelEncoder assigns integer codes on first encounter within one build.
type labelEncoder struct {
	codes map[string]int
}

func newLabelEncoder() *labelEncoder {
	return &labelEncoder{codes: make(map[string]int)}
}

func (e *labelEncoder) encode(value string) float64 {
	code, ok := e.codes[value]
	if !ok {
		code = len(e.codes)
		e.codes[value] = code
	}

	return float64(code)
}

// BuildItemFeatureMatrix encodes and standardizes the catalog. Missing
// category/style/color/brand fall back to "unknown", season to "all", price
// to 0. Prices land in 5 equal-width buckets over [0, max(price)]; when the
// whole catalog is free the bucket column is a constant 0. Every column is
// standardized to zero mean and unit variance over this call's items;
// constant columns standardize to all zeros.
func BuildItemFeatureMatrix(items []domain.FashionItem) *ItemFeatureMatrix {
	if len(items) == 0 {
		return &ItemFeatureMatrix{}
	}

	m := &ItemFeatureMatrix{
		ItemIDs: make([]uint64, len(items)),
		Rows:    make([][]float64, len(items)),
		index:   make(map[uint64]int, len(items)),
	}

	encoders := [5]*labelEncoder{
		newLabelEncoder(), // category
		newLabelEncoder(), // style
		newLabelEncoder(), // color
		newLabelEncoder(), // brand
		newLabelEncoder(), // season
	}

	var maxPrice float64
	for _, item := range items {
		if item.Price > maxPrice {
			maxPrice = item.Price
		}
	}

	for idx, item := range items {
		row := make([]float64, featureColumns)
		row[0] = encoders[0].encode(fallback(item.Category, "unknown"))
		row[1] = encoders[1].encode(fallback(item.Style, "unknown"))
		row[2] = encoders[2].encode(fallback(item.Color, "unknown"))
		row[3] = encoders[3].encode(fallback(item.Brand, "unknown"))
		row[4] = encoders[4].encode(fallback(item.Season, "all"))
		row[5] = priceBucket(item.Price, maxPrice)
		row[6] = item.TrendingScore

		m.ItemIDs[idx] = item.ID
		m.Rows[idx] = row
		m.index[item.ID] = idx
	}

	standardize(m.Rows)

	return m
}

func (m *ItemFeatureMatrix) Empty() bool {
	return m == nil || len(m.ItemIDs) == 0
}

// Row returns the standardized feature vector for an item, or false when the
// item is not in the catalog snapshot this matrix was built from.
func (m *ItemFeatureMatrix) Row(itemID uint64) ([]float64, bool) {
	if m.Empty() {
		return nil, false
	}

	idx, ok := m.index[itemID]
	if !ok {
		return nil, false
	}

	return m.Rows[idx], true
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}

	return value
}

// priceBucket places a price into one of 5 equal-width bins over
// [0, maxPrice]. A catalog with no positive price degenerates to a single
// bucket, which flattens the price signal for tiny catalogs; that behavior is
// kept as-is.
func priceBucket(price, maxPrice float64) float64 {
	if maxPrice <= 0 {
		return 0
	}

	bucket := int(price / (maxPrice / 5))
	if bucket > 4 {
		bucket = 4
	}
	if bucket < 0 {
		bucket = 0
	}

	return float64(bucket)
}

// standardize rescales every column in place to zero mean and unit variance.
// Columns with zero variance become all zeros.
func standardize(rows [][]float64) {
	if len(rows) == 0 {
		return
	}

	n := float64(len(rows))
	cols := len(rows[0])

	for c := 0; c < cols; c++ {
		var mean float64
		for _, row := range rows {
			mean += row[c]
		}
		mean /= n

		var variance float64
		for _, row := range rows {
			d := row[c] - mean
			variance += d * d
		}
		variance /= n

		std := math.Sqrt(variance)
		for _, row := range rows {
			if std == 0 {
				row[c] = 0
			} else {
				row[c] = (row[c] - mean) / std
			}
		}
	}
}
