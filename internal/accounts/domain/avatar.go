package domain

import (
	"math/rand/v2"
	"slices"
	"sync"
)

// DefaultAvatars is the built-in avatar set used for random assignment and as
// the allow-list when no avatar directory is configured.
var DefaultAvatars = []string{
	"goku.png", "vegeta.png", "gohan.png", "piccolo.png", "trunks.png", "goten.png", "krillin.png", "android18.png",
	"frieza.png", "cell.png", "majin_buu.png", "beerus.png", "whis.png", "broly.png", "tien.png", "yamcha.png",
	"nappa.png", "raditz.png", "zarbon.png", "dodoria.png", "ginyu.png", "recoome.png", "burter.png", "jeice.png",
	"hit.png", "jiren.png", "toppo.png", "caulifla.png", "kale.png", "cabba.png", "zamasu.png", "goku_black.png",
}

// AvatarPicker chooses an avatar for accounts created without one.
type AvatarPicker interface {
	Pick() string
}

// RandomAvatars picks uniformly from a fixed set. Safe for concurrent use.
type RandomAvatars struct {
	mu      sync.Mutex
	rng     *rand.Rand
	choices []string
}

// NewRandomAvatars returns a picker over choices (DefaultAvatars when empty)
// driven by src. Pass a seeded source for reproducible picks.
func NewRandomAvatars(src rand.Source, choices ...string) *RandomAvatars {
	if len(choices) == 0 {
		choices = DefaultAvatars
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &RandomAvatars{rng: rand.New(src), choices: slices.Clone(choices)}
}

// NewSeededAvatars is NewRandomAvatars with a PCG source seeded by seed.
func NewSeededAvatars(seed uint64, choices ...string) *RandomAvatars {
	return NewRandomAvatars(rand.NewPCG(seed, seed), choices...)
}

func (p *RandomAvatars) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.choices[p.rng.IntN(len(p.choices))]
}

// FixedAvatar always picks the same name.
type FixedAvatar string

func (f FixedAvatar) Pick() string { return string(f) }
