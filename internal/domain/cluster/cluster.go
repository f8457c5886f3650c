// Package cluster implements greedy single-pass clustering of pages over fused text and image similarity.
package cluster

// Item is one document's feature pair as consumed by the engine.
type Item struct {
	Filename string
	Text     []float64
	Image    []float64
}

// Cluster is a group of similar documents with running-mean centroids.
// Centroid dimensionality is fixed at creation.
type Cluster struct {
	textCentroid  []float64
	imageCentroid []float64
	members       []string
	memberSet     map[string]struct{}
}

func newCluster(it Item) *Cluster {
	return &Cluster{
		textCentroid:  append([]float64(nil), it.Text...),
		imageCentroid: append([]float64(nil), it.Image...),
		members:       []string{it.Filename},
		memberSet:     map[string]struct{}{it.Filename: {}},
	}
}

// add inserts it and folds its vectors into both centroids:
// c[k] = (c[k]*(n-1) + v[k]) / n with n the size after insertion.
// Re-adding a member is a no-op.
func (c *Cluster) add(it Item) {
	if _, ok := c.memberSet[it.Filename]; ok {
		return
	}
	c.members = append(c.members, it.Filename)
	c.memberSet[it.Filename] = struct{}{}

	n := float64(len(c.members))
	updateMean(c.textCentroid, it.Text, n)
	updateMean(c.imageCentroid, it.Image, n)
}

func updateMean(centroid, v []float64, n float64) {
	for k := range centroid {
		centroid[k] = (centroid[k]*(n-1) + v[k]) / n
	}
}

// Members returns the member filenames in insertion order.
func (c *Cluster) Members() []string { return append([]string(nil), c.members...) }

// Size returns the member count.
func (c *Cluster) Size() int { return len(c.members) }

// Contains reports whether filename is a member.
func (c *Cluster) Contains(filename string) bool {
	_, ok := c.memberSet[filename]
	return ok
}

// TextCentroid returns a copy of the text centroid.
func (c *Cluster) TextCentroid() []float64 { return append([]float64(nil), c.textCentroid...) }

// ImageCentroid returns a copy of the image centroid.
func (c *Cluster) ImageCentroid() []float64 { return append([]float64(nil), c.imageCentroid...) }
