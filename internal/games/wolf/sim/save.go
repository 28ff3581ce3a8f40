package sim

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/level"
	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// Save format identification.
const (
	SaveMagic   = "WSAV"
	SaveVersion = 4
)

var (
	// ErrSaveVersion means the save was written by another format version.
	ErrSaveVersion = errors.New("sim: save version mismatch")
	// ErrSaveFormat means the save is truncated or inconsistent.
	ErrSaveFormat = errors.New("sim: malformed save")
)

type saveHeader struct {
	Magic   [4]byte
	Version uint32
	Skill   int32
	Seed    int64
	Draws   uint64
	Flags   uint32
	MapLen  uint32
}

const saveGodMode = 1

// maxSaveMap bounds the embedded map; three uncompressed planes fit easily.
const maxSaveMap = 1 << 20

// maxSaveDraws bounds the random stream replayed on load, far beyond what
// hours of play consume.
const maxSaveDraws = 1 << 28

type doorRecord struct {
	X, Y     int32
	Vertical uint8
	Kind     uint8
	Action   uint8
	_        uint8
	Area1    int32
	Area2    int32
	Ticcount int32
}

type staticRecord struct {
	X, Y int32
	// Index into level.Statics, or -1 for a dropped clip.
	Index int32
}

type levelRecord struct {
	Time          int32
	Kills         int32
	TotalKills    int32
	Secrets       int32
	TotalSecrets  int32
	Treasure      int32
	TotalTreasure int32
	Victory       uint8
	CamActive     uint8
	_             [2]uint8
	EndTime       int32
	KillX, KillY  int32
	CamTics       int32
	CamActor      int32
	NextID        int32
}

type pushWallRecord struct {
	Active   uint8
	Dir      uint8
	_        [2]uint8
	X, Y     int32
	Moved    int32
	Progress int32
	TexX     int32
	TexY     int32
}

type actorRecord struct {
	ID       int32
	Type     int32
	State    int32
	X, Y     int32
	TileX    int32
	TileY    int32
	Angle    int32
	Dir      int32
	Distance int32
	Speed    int32
	Ticcount int32
	Health   int32
	Flags    uint32
	Area     int32
	Temp2    int32
	Sprite   int32
}

type playerRecord struct {
	X, Y         int32
	TileX, TileY int32
	Angle        float64
	Area         int32
	Health       int32
	Ammo         int32
	Lives        int32
	Score        int32
	NextExtra    int32
	ExtraEvery   int32
	StartAmmo    int32
	Keys         int32
	Backpack     uint8
	Augment      uint8
	GodMode      uint8
	Attacking    uint8
	Weapon       int32
	BestWeapon   int32
	ChosenWeapon int32
	AttackFrame  int32
	AttackCount  int32
	WeaponFrame  int32
	PlayState    int32
	DamageFlash  int32
	FaceWince    int32
	Speed        int32
}

type grids struct {
	Tiles    [MapSize][MapSize]uint32
	WallTexX [MapSize][MapSize]int32
	WallTexY [MapSize][MapSize]int32
	Areas    [MapSize][MapSize]int32
}

type areaRecord struct {
	Links    [NumAreas][NumAreas]int32
	ByPlayer [NumAreas]uint8
}

// saveWriter keeps the first write error so a long sequence of puts needs a
// single check at the end.
type saveWriter struct {
	w   io.Writer
	err error
}

func (s *saveWriter) put(v any) {
	if s.err != nil {
		return
	}
	s.err = binary.Write(s.w, binary.LittleEndian, v)
}

type saveReader struct {
	r   io.Reader
	err error
}

func (s *saveReader) get(v any) {
	if s.err != nil {
		return
	}
	s.err = binary.Read(s.r, binary.LittleEndian, v)
}

func staticIndex(info level.StaticInfo) int32 {
	for i, s := range level.Statics {
		if s == info {
			return int32(i)
		}
	}
	return -1
}

// Save writes the complete world state to out.
func Save(w *World, out io.Writer) error {
	mapData := level.Encode(w.Level.MapFile())

	h := saveHeader{
		Version: SaveVersion,
		Skill:   int32(w.opts.Skill),
		Seed:    w.rng.seed,
		Draws:   w.rng.draws,
		MapLen:  uint32(len(mapData)),
	}
	copy(h.Magic[:], SaveMagic)
	if w.opts.GodMode {
		h.Flags |= saveGodMode
	}

	sw := &saveWriter{w: out}
	sw.put(&h)
	if sw.err == nil {
		_, sw.err = out.Write(mapData)
	}

	var g grids
	for x := range MapSize {
		for y := range MapSize {
			g.Tiles[x][y] = uint32(w.Tiles[x][y])
			g.WallTexX[x][y] = int32(w.WallTexX[x][y])
			g.WallTexY[x][y] = int32(w.WallTexY[x][y])
			g.Areas[x][y] = int32(w.Areas[x][y])
		}
	}
	sw.put(&g)

	sw.put(uint32(len(w.Doors)))
	for _, d := range w.Doors {
		sw.put(&doorRecord{
			X: int32(d.X), Y: int32(d.Y),
			Vertical: boolByte(d.Vertical),
			Kind:     uint8(d.Kind),
			Action:   uint8(d.Action),
			Area1:    int32(d.Area1),
			Area2:    int32(d.Area2),
			Ticcount: int32(d.Ticcount),
		})
	}

	sw.put(uint32(w.numStatics))
	for _, s := range w.Statics() {
		sw.put(&staticRecord{X: int32(s.X), Y: int32(s.Y), Index: staticIndex(s.Info)})
	}

	st := w.State
	sw.put(&levelRecord{
		Time:          int32(st.Time),
		Kills:         int32(st.Kills),
		TotalKills:    int32(st.TotalKills),
		Secrets:       int32(st.Secrets),
		TotalSecrets:  int32(st.TotalSecrets),
		Treasure:      int32(st.Treasure),
		TotalTreasure: int32(st.TotalTreasure),
		Victory:       boolByte(st.Victory),
		CamActive:     boolByte(w.deathCam.Active),
		EndTime:       int32(st.EndTime),
		KillX:         st.KillX,
		KillY:         st.KillY,
		CamTics:       int32(w.deathCam.Tics),
		CamActor:      int32(w.deathCam.Actor),
		NextID:        int32(w.nextID),
	})

	sw.put(uint32(w.numActors))
	for _, a := range w.Actors() {
		sw.put(&actorRecord{
			ID: int32(a.ID), Type: int32(a.Type), State: int32(a.State),
			X: a.X, Y: a.Y,
			TileX: int32(a.TileX), TileY: int32(a.TileY),
			Angle:    int32(a.Angle),
			Dir:      int32(a.Dir),
			Distance: int32(a.Distance),
			Speed:    int32(a.Speed),
			Ticcount: int32(a.Ticcount),
			Health:   int32(a.Health),
			Flags:    uint32(a.Flags),
			Area:     int32(a.Area),
			Temp2:    int32(a.Temp2),
			Sprite:   int32(a.Sprite),
		})
	}

	var ar areaRecord
	for i := range NumAreas {
		for j := range NumAreas {
			ar.Links[i][j] = int32(w.Graph.Links[i][j])
		}
		ar.ByPlayer[i] = boolByte(w.Graph.ByPlayer[i])
	}
	sw.put(&ar)

	pw := w.PWall
	sw.put(&pushWallRecord{
		Active: boolByte(pw.Active), Dir: uint8(pw.Dir),
		X: int32(pw.X), Y: int32(pw.Y),
		Moved: int32(pw.Moved), Progress: int32(pw.Progress),
		TexX: int32(pw.TexX), TexY: int32(pw.TexY),
	})

	p := w.Player
	sw.put(&playerRecord{
		X: p.X, Y: p.Y,
		TileX: int32(p.TileX), TileY: int32(p.TileY),
		Angle:        p.Angle,
		Area:         int32(p.Area),
		Health:       int32(p.Health),
		Ammo:         int32(p.Ammo),
		Lives:        int32(p.Lives),
		Score:        int32(p.Score),
		NextExtra:    int32(p.NextExtra),
		ExtraEvery:   int32(p.ExtraEvery),
		StartAmmo:    int32(p.StartAmmo),
		Keys:         int32(p.Keys),
		Backpack:     boolByte(p.Backpack),
		Augment:      boolByte(p.Augment),
		GodMode:      boolByte(p.GodMode),
		Attacking:    boolByte(p.Attacking),
		Weapon:       int32(p.Weapon),
		BestWeapon:   int32(p.BestWeapon),
		ChosenWeapon: int32(p.ChosenWeapon),
		AttackFrame:  int32(p.AttackFrame),
		AttackCount:  int32(p.AttackCount),
		WeaponFrame:  int32(p.WeaponFrame),
		PlayState:    int32(p.PlayState),
		DamageFlash:  int32(p.DamageFlash),
		FaceWince:    int32(p.FaceWince),
		Speed:        int32(p.Speed),
	})

	sw.put(uint32(SaveVersion))
	if sw.err != nil {
		return fmt.Errorf("sim: write save: %w", sw.err)
	}
	return nil
}

// SaveBytes returns the save image of w.
func SaveBytes(w *World) ([]byte, error) {
	var buf bytes.Buffer
	if err := Save(w, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load rebuilds a world from a save image. On any error nothing is returned.
func Load(in io.Reader, logger *log.Logger) (*World, error) {
	sr := &saveReader{r: in}

	var h saveHeader
	sr.get(&h)
	if sr.err != nil {
		return nil, formatErr("header", sr.err)
	}
	if string(h.Magic[:]) != SaveMagic {
		return nil, fmt.Errorf("sim: bad magic %q: %w", h.Magic[:], ErrSaveFormat)
	}
	if h.Version != SaveVersion {
		return nil, fmt.Errorf("sim: save version %d, expected %d: %w", h.Version, SaveVersion, ErrSaveVersion)
	}
	if h.Skill < level.SkillBaby || h.Skill > level.SkillHard {
		return nil, fmt.Errorf("sim: skill %d: %w", h.Skill, ErrSaveFormat)
	}
	if h.Draws > maxSaveDraws {
		return nil, fmt.Errorf("sim: random draws %d: %w", h.Draws, ErrSaveFormat)
	}

	if h.MapLen < level.HeaderSize || h.MapLen > maxSaveMap {
		return nil, fmt.Errorf("sim: map length %d: %w", h.MapLen, ErrSaveFormat)
	}
	mapData := make([]byte, h.MapLen)
	if _, err := io.ReadFull(in, mapData); err != nil {
		return nil, formatErr("map", err)
	}
	lvl, err := level.Decode(mapData)
	if err != nil {
		return nil, fmt.Errorf("sim: embedded map: %v: %w", err, ErrSaveFormat)
	}

	opts := DefaultOptions()
	opts.Skill = int(h.Skill)
	opts.Seed = h.Seed
	opts.GodMode = h.Flags&saveGodMode != 0
	opts.Logger = logger
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	w := &World{
		Level: lvl,
		rng:   NewRandom(h.Seed),
		opts:  opts,
		log:   opts.Logger,
	}

	var g grids
	sr.get(&g)
	for x := range MapSize {
		for y := range MapSize {
			w.Tiles[x][y] = level.TileFlags(g.Tiles[x][y])
			w.WallTexX[x][y] = int(g.WallTexX[x][y])
			w.WallTexY[x][y] = int(g.WallTexY[x][y])
			w.Areas[x][y] = int(g.Areas[x][y])
		}
	}
	w.DoorIndex = lvl.DoorIndex

	var nDoors uint32
	sr.get(&nDoors)
	if sr.err == nil && int(nDoors) != len(lvl.Doors) {
		return nil, fmt.Errorf("sim: %d doors, map has %d: %w", nDoors, len(lvl.Doors), ErrSaveFormat)
	}
	w.Doors = make([]Door, 0, len(lvl.Doors))
	for range min(int(nDoors), len(lvl.Doors)) {
		var d doorRecord
		sr.get(&d)
		if d.Action > uint8(DoorClosing) || d.Ticcount < 0 {
			sr.fail("door state")
		}
		w.Doors = append(w.Doors, Door{
			X: int(d.X), Y: int(d.Y),
			Vertical: d.Vertical != 0,
			Kind:     level.DoorKind(d.Kind),
			Area1:    int(d.Area1),
			Area2:    int(d.Area2),
			Action:   DoorAction(d.Action),
			Ticcount: int(d.Ticcount),
		})
	}

	var nStatics uint32
	sr.get(&nStatics)
	if nStatics > MaxStatics {
		sr.fail("static count")
	}
	for range min(int(nStatics), MaxStatics) {
		var s staticRecord
		sr.get(&s)
		info := level.DroppedClip
		if s.Index >= 0 {
			if int(s.Index) >= len(level.Statics) {
				sr.fail("static index")
				break
			}
			info = level.Statics[s.Index]
		}
		if !units.InMap(int(s.X), int(s.Y)) {
			sr.fail("static position")
			break
		}
		w.statics[w.numStatics] = Static{X: int(s.X), Y: int(s.Y), Info: info}
		w.numStatics++
	}

	var lr levelRecord
	sr.get(&lr)
	w.State = LevelState{
		Time:          int(lr.Time),
		Kills:         int(lr.Kills),
		TotalKills:    int(lr.TotalKills),
		Secrets:       int(lr.Secrets),
		TotalSecrets:  int(lr.TotalSecrets),
		Treasure:      int(lr.Treasure),
		TotalTreasure: int(lr.TotalTreasure),
		Victory:       lr.Victory != 0,
		EndTime:       int(lr.EndTime),
		KillX:         lr.KillX,
		KillY:         lr.KillY,
	}
	w.deathCam = deathCam{Active: lr.CamActive != 0, Tics: int(lr.CamTics), Actor: int(lr.CamActor)}
	w.nextID = int(lr.NextID)

	var nActors uint32
	sr.get(&nActors)
	if nActors > MaxActors {
		sr.fail("actor count")
	}
	for range min(int(nActors), MaxActors) {
		var a actorRecord
		sr.get(&a)
		if a.Type < 0 || a.Type >= int32(level.NumActorTypes) || a.State < 0 || a.State >= int32(NumStates) ||
			a.Dir < 0 || a.Dir > int32(units.DirNone) {
			sr.fail("actor record")
			break
		}
		w.actors[w.numActors] = Actor{
			ID: int(a.ID), Type: level.ActorType(a.Type), State: StateID(a.State),
			X: a.X, Y: a.Y,
			TileX: int(a.TileX), TileY: int(a.TileY),
			Angle:    int(a.Angle),
			Dir:      units.Dir8(a.Dir),
			Distance: int(a.Distance),
			Speed:    int(a.Speed),
			Ticcount: int(a.Ticcount),
			Health:   int(a.Health),
			Flags:    ActorFlags(a.Flags),
			Area:     int(a.Area),
			Temp2:    int(a.Temp2),
			Sprite:   int(a.Sprite),
		}
		w.numActors++
	}

	var ar areaRecord
	sr.get(&ar)
	for i := range NumAreas {
		for j := range NumAreas {
			w.Graph.Links[i][j] = int(ar.Links[i][j])
		}
		w.Graph.ByPlayer[i] = ar.ByPlayer[i] != 0
	}

	var pr pushWallRecord
	sr.get(&pr)
	w.PWall = PushWall{
		Active: pr.Active != 0, Dir: units.Dir4(pr.Dir),
		X: int(pr.X), Y: int(pr.Y),
		Moved: int(pr.Moved), Progress: int(pr.Progress),
		TexX: int(pr.TexX), TexY: int(pr.TexY),
	}
	if w.PWall.Active && (!units.InMap(w.PWall.X, w.PWall.Y) || w.PWall.Dir > units.Dir4South) {
		sr.fail("push-wall")
	}

	var plr playerRecord
	sr.get(&plr)
	w.Player = Player{
		X: plr.X, Y: plr.Y,
		TileX: int(plr.TileX), TileY: int(plr.TileY),
		Angle:        plr.Angle,
		Area:         int(plr.Area),
		Health:       int(plr.Health),
		Ammo:         int(plr.Ammo),
		Lives:        int(plr.Lives),
		Score:        int(plr.Score),
		NextExtra:    int(plr.NextExtra),
		ExtraEvery:   int(plr.ExtraEvery),
		StartAmmo:    int(plr.StartAmmo),
		Keys:         int(plr.Keys),
		Backpack:     plr.Backpack != 0,
		Augment:      plr.Augment != 0,
		GodMode:      plr.GodMode != 0,
		Attacking:    plr.Attacking != 0,
		Weapon:       Weapon(plr.Weapon),
		BestWeapon:   Weapon(plr.BestWeapon),
		ChosenWeapon: Weapon(plr.ChosenWeapon),
		AttackFrame:  int(plr.AttackFrame),
		AttackCount:  int(plr.AttackCount),
		WeaponFrame:  int(plr.WeaponFrame),
		PlayState:    PlayState(plr.PlayState),
		DamageFlash:  int(plr.DamageFlash),
		FaceWince:    int(plr.FaceWince),
		Speed:        int(plr.Speed),
	}
	if w.Player.Weapon < 0 || w.Player.Weapon >= NumWeapons ||
		w.Player.ChosenWeapon < 0 || w.Player.ChosenWeapon >= NumWeapons ||
		w.Player.AttackFrame < 0 || w.Player.AttackFrame > 3 {
		sr.fail("player weapon")
	}

	var trailer uint32
	sr.get(&trailer)
	if sr.err != nil {
		return nil, formatErr("body", sr.err)
	}
	if trailer != SaveVersion {
		return nil, fmt.Errorf("sim: trailing version %d, expected %d: %w", trailer, SaveVersion, ErrSaveVersion)
	}

	w.rng.restore(h.Seed, h.Draws)
	w.log.Info("save loaded", "name", lvl.Name, "actors", w.numActors, "time", w.State.Time)
	return w, nil
}

func (s *saveReader) fail(what string) {
	if s.err == nil {
		s.err = fmt.Errorf("bad %s", what)
	}
}

// formatErr wraps a read failure as ErrSaveFormat.
func formatErr(part string, err error) error {
	if errors.Is(err, ErrSaveFormat) || errors.Is(err, ErrSaveVersion) {
		return err
	}
	return fmt.Errorf("sim: read %s: %v: %w", part, err, ErrSaveFormat)
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
