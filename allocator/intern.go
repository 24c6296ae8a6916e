package allocator

// InternStats reports how much sharing interning introduced, for callers
// that want to confirm atom_count(target) <= atom_count(source) and
// similarly for pairs (spec.md §4.7's post-conditions).
type InternStats struct {
	AtomsDeduped int
	PairsDeduped int
}

type pairKey struct{ first, rest NodePtr }

// Intern walks root in src and rebuilds it in dst (already constructed by
// the caller, typically via New()), sharing any structurally equal subtree.
// Two memoization tables drive the sharing, per spec.md §4.7: one keyed by
// atom byte-equality, one keyed by (left', right') identity in dst. The
// walk is iterative (an explicit work stack, not Go call-stack recursion)
// so a deeply right-leaning list cannot blow the stack, matching
// spec.md §9's "implementers should use an explicit stack" guidance for
// subgraph folds in general.
//
// dst's configured Limits are enforced exactly as ordinary allocation
// would be (SPEC_FULL.md §4.7.1): a TooManyAtoms/TooManyPairs/OutOfMemory
// error here means the caller must discard dst, per spec.md §7's
// propagation policy — Intern never leaves dst partially memoized in a way
// that would be unsafe to keep, but it also does not roll dst back itself.
func Intern(src *Allocator, dst *Allocator, root NodePtr) (NodePtr, InternStats, error) {
	atomMemo := make(map[string]NodePtr)
	pairMemo := make(map[pairKey]NodePtr)
	var stats InternStats

	type work struct {
		src  NodePtr
		kind int8 // 0 = evaluate, 1 = combine (pop two results, cons)
	}

	var resultStack []NodePtr
	var stack []work
	stack = append(stack, work{src: root, kind: 0})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.kind == 1 {
			n := len(resultStack)
			left := resultStack[n-2]
			right := resultStack[n-1]
			resultStack = resultStack[:n-2]

			key := pairKey{first: left, rest: right}
			if existing, ok := pairMemo[key]; ok {
				stats.PairsDeduped++
				resultStack = append(resultStack, existing)
				continue
			}
			p, err := dst.NewPair(left, right)
			if err != nil {
				return NodePtr{}, stats, err
			}
			pairMemo[key] = p
			resultStack = append(resultStack, p)
			continue
		}

		s := src.Sexp(top.src)
		if !s.IsPair {
			b := s.Atom.Bytes
			if existing, ok := atomMemo[string(b)]; ok {
				stats.AtomsDeduped++
				resultStack = append(resultStack, existing)
				continue
			}
			na, err := dst.NewAtom(b)
			if err != nil {
				return NodePtr{}, stats, err
			}
			atomMemo[string(b)] = na
			resultStack = append(resultStack, na)
			continue
		}

		// Push combine-after-children, then the two children (rest first so
		// first is processed — and thus pushed onto resultStack — first,
		// keeping resultStack ordered [first, rest] for the combine step).
		stack = append(stack, work{kind: 1})
		stack = append(stack, work{src: s.Pair.Rest, kind: 0})
		stack = append(stack, work{src: s.Pair.First, kind: 0})
	}

	return resultStack[0], stats, nil
}
