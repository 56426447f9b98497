package objects

// Block is a static solid obstacle.
type Block struct {
	Sprite
}

// OnInitialize marks the block solid.
func (b *Block) OnInitialize() {
	b.AddTag(TagSolid)
}
