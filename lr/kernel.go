package lr

import (
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// itemKey identifies an item by rule number and dot position.
type itemKey struct {
	rule, dot int
}

// cantor maps a pair of naturals to a single natural (Cantor pairing function).
func cantor(a, b int) int {
	return (a+b)*(a+b+1)/2 + b
}

// kernelHash is the sorted list of Cantor hashes of the items of a kernel.
// Equal kernels have equal hashes, regardless of the order of their items.
type kernelHash []int

func hashKernel(kernel []itemKey) kernelHash {
	h := make(kernelHash, len(kernel))
	for i, k := range kernel {
		h[i] = cantor(k.rule, k.dot)
	}
	sort.Ints(h)
	return h
}

// kernelComparator orders kernel hashes lexicographically, shorter before
// longer on a common prefix.
func kernelComparator(a, b interface{}) int {
	h1, h2 := a.(kernelHash), b.(kernelHash)
	for i := 0; i < len(h1) && i < len(h2); i++ {
		if c := utils.IntComparator(h1[i], h2[i]); c != 0 {
			return c
		}
	}
	return utils.IntComparator(len(h1), len(h2))
}

// kernelIndex maps kernels to state numbers. States are numbered in the
// order their kernels are inserted for the first time, starting at 0.
type kernelIndex struct {
	tree *treemap.Map
}

func newKernelIndex() *kernelIndex {
	return &kernelIndex{tree: treemap.NewWith(kernelComparator)}
}

// insert returns the state number for a kernel. The second return value
// is true if the kernel has not been seen before.
func (ki *kernelIndex) insert(kernel []itemKey) (int, bool) {
	h := hashKernel(kernel)
	if n, found := ki.tree.Get(h); found {
		return n.(int), false
	}
	n := ki.tree.Size()
	ki.tree.Put(h, n)
	return n, true
}

// size returns the number of distinct kernels.
func (ki *kernelIndex) size() int {
	return ki.tree.Size()
}
