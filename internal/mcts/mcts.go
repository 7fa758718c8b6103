// Package mcts implements the optional MCTS refiner (§4.H), the 3D
// placement-search analog of the teacher's genetic cut-order optimizer in
// _examples/piwi3910-cnc-calculator/internal/engine/genetic.go. Where the
// teacher evolves a population of chromosomes over fixed generations, this
// package grows a single search tree under UCB1 and a per-call iteration or
// context budget, since the packer's state space (queue order is already
// fixed by §4.G) is a sequential decision problem rather than a
// combinatorial ordering one.
package mcts

import (
	"context"
	"math"
	"math/rand"

	"github.com/fleetpack/truckload/internal/engine"
	"github.com/fleetpack/truckload/internal/model"
)

// explorationConstant is UCB1's standard √2 (§4.H).
const explorationConstant = math.Sqrt2

// topCandidatesPerNode bounds branching: only the top ~8 candidates by a
// cheap score pass are expanded as children of a node (§4.H).
const topCandidatesPerNode = 8

// rolloutDepthCap bounds a single simulation's length so an unlucky queue
// doesn't blow the iteration budget on one rollout.
const rolloutDepthCap = 64

// Result is the refined output of a single Refine call.
type Result struct {
	Placed   []model.PlacedBox
	Unplaced []model.Box
}

// node is one state in the search tree: the boxes placed so far along this
// branch, the boxes this branch left unplaced, and the queue of boxes still
// to place.
type node struct {
	parent   *node
	children []*node
	placed   []model.PlacedBox
	unplaced []model.Box
	queue    []model.Box
	visits   int
	reward   float64
	expanded bool
}

// Refine runs UCB1 tree search over the full (placed, remaining queue) state
// space, starting from an empty placement and the packer's full box queue in
// its §4.G placement order — not only the boxes the greedy pass left
// unplaced — so it can explore alternative action sequences for the whole
// load rather than only mopping up leftovers (§4.H). The greedy result is
// carried in as the baseline to beat: Refine only ever returns it or
// something strictly better by EvaluateConfiguration, so a canceled or
// budget-exhausted search still returns a complete, valid placement (§5).
func Refine(ctx context.Context, boxes []model.Box, greedyPlaced []model.PlacedBox, greedyUnplaced []model.Box, truck model.TruckDimensions, cfg model.OptimizerConfig) (Result, bool, error) {
	if len(boxes) == 0 {
		return Result{Placed: greedyPlaced, Unplaced: greedyUnplaced}, false, nil
	}

	rng := rand.New(rand.NewSource(cfg.MCTSSeed))

	root := &node{queue: engine.SortQueue(boxes)}

	bestPlaced := append([]model.PlacedBox{}, greedyPlaced...)
	bestUnplaced := append([]model.Box{}, greedyUnplaced...)
	bestReward := EvaluateConfiguration(bestPlaced, bestUnplaced, truck, cfg)

	exhausted := cfg.MCTSIterations <= 0
	for i := 0; i < cfg.MCTSIterations; i++ {
		select {
		case <-ctx.Done():
			exhausted = true
		default:
		}
		if exhausted {
			break
		}

		leaf := selectAndExpand(root, truck, cfg, rng)
		reward, finalPlaced, finalUnplaced := rollout(leaf, truck, cfg)
		backpropagate(leaf, reward)

		if reward > bestReward {
			bestReward = reward
			bestPlaced = finalPlaced
			bestUnplaced = finalUnplaced
		}

		if cfg.Observer != nil {
			cfg.Observer.OnProgress(float64(i+1)/float64(cfg.MCTSIterations), len(bestPlaced))
		}
	}

	return Result{Placed: bestPlaced, Unplaced: bestUnplaced}, exhausted, nil
}

// selectAndExpand walks down the tree from root by UCB1, expanding the
// first node it meets that has unexpanded children.
func selectAndExpand(root *node, truck model.TruckDimensions, cfg model.OptimizerConfig, rng *rand.Rand) *node {
	cur := root
	for {
		if len(cur.queue) == 0 {
			return cur
		}
		if !cur.expanded {
			expand(cur, truck, cfg)
			cur.expanded = true
		}
		if len(cur.children) == 0 {
			return cur
		}
		cur = bestChildUCB1(cur, rng)
	}
}

// expand generates the top candidates for the head of the node's queue
// against the boxes already placed along this branch, and attaches one
// child per candidate, plus one child representing "leave this box
// unplaced" when no candidate is valid.
func expand(n *node, truck model.TruckDimensions, cfg model.OptimizerConfig) {
	if len(n.queue) == 0 {
		return
	}
	head := n.queue[0]
	rest := n.queue[1:]

	candidates := engine.TopCandidates(head, truck, n.placed, cfg, topCandidatesPerNode)
	for _, c := range candidates {
		pb := model.PlacedBox{Box: head, Position: c.Position, Orientation: c.Orientation}
		child := &node{
			parent:   n,
			placed:   append(append([]model.PlacedBox{}, n.placed...), pb),
			unplaced: n.unplaced,
			queue:    rest,
		}
		n.children = append(n.children, child)
	}
	if len(candidates) == 0 {
		unplaced := append(append([]model.Box{}, n.unplaced...), head)
		child := &node{parent: n, placed: n.placed, unplaced: unplaced, queue: rest}
		n.children = append(n.children, child)
	}
}

// bestChildUCB1 picks the child maximizing the UCB1 score. Unvisited
// children are preferred and chosen via rng, so repeated runs with the same
// seed visit them in the same order (§8.5 determinism).
func bestChildUCB1(n *node, rng *rand.Rand) *node {
	var unvisited []*node
	for _, c := range n.children {
		if c.visits == 0 {
			unvisited = append(unvisited, c)
		}
	}
	if len(unvisited) > 0 {
		return unvisited[rng.Intn(len(unvisited))]
	}

	var best *node
	bestUCB := math.Inf(-1)
	for _, c := range n.children {
		exploitation := c.reward / float64(c.visits)
		exploration := explorationConstant * math.Sqrt(math.Log(float64(n.visits))/float64(c.visits))
		ucb := exploitation + exploration
		if ucb > bestUCB {
			bestUCB, best = ucb, c
		}
	}
	return best
}

// rollout completes the queue from leaf greedily (§4.G's single-best rule),
// up to rolloutDepthCap further placements, and evaluates the resulting
// configuration.
func rollout(leaf *node, truck model.TruckDimensions, cfg model.OptimizerConfig) (float64, []model.PlacedBox, []model.Box) {
	placed := append([]model.PlacedBox{}, leaf.placed...)
	unplaced := append([]model.Box{}, leaf.unplaced...)

	queue := leaf.queue
	for i := 0; i < len(queue) && i < rolloutDepthCap; i++ {
		box := queue[i]
		c, ok := engine.BestCandidate(box, truck, placed, cfg)
		if !ok {
			unplaced = append(unplaced, box)
			continue
		}
		pb := model.PlacedBox{Box: box, Position: c.Position, Orientation: c.Orientation}
		placed = append(placed, pb)
	}
	if len(queue) > rolloutDepthCap {
		unplaced = append(unplaced, queue[rolloutDepthCap:]...)
	}

	reward := EvaluateConfiguration(placed, unplaced, truck, cfg)
	return reward, placed, unplaced
}

// backpropagate adds reward to leaf and every ancestor's visit/reward
// totals.
func backpropagate(leaf *node, reward float64) {
	for n := leaf; n != nil; n = n.parent {
		n.visits++
		n.reward += reward
	}
}
