package sim

import "github.com/vovakirdan/tui-wolf/internal/games/wolf/level"

// StateID indexes a per-type state table. The same enumeration is shared by
// every actor type; each type defines the subset it uses.
type StateID int

const (
	StStand StateID = iota
	StPath1
	StPath1s
	StPath2
	StPath3
	StPath3s
	StPath4
	StPain
	StPain1
	StShoot1
	StShoot2
	StShoot3
	StShoot4
	StShoot5
	StShoot6
	StShoot7
	StShoot8
	StShoot9
	StChase1
	StChase1s
	StChase2
	StChase3
	StChase3s
	StChase4
	StDie1
	StDie2
	StDie3
	StDie4
	StDie5
	StDie6
	StDie7
	StDie8
	StDie9
	StDead
	StDeathCam
	StDormant
	StRemove

	NumStates
)

var stateNames = [NumStates]string{
	"stand", "path1", "path1s", "path2", "path3", "path3s", "path4",
	"pain", "pain1",
	"shoot1", "shoot2", "shoot3", "shoot4", "shoot5", "shoot6", "shoot7", "shoot8", "shoot9",
	"chase1", "chase1s", "chase2", "chase3", "chase3s", "chase4",
	"die1", "die2", "die3", "die4", "die5", "die6", "die7", "die8", "die9",
	"dead", "deathcam", "dormant", "remove",
}

func (s StateID) String() string {
	if s < 0 || s >= NumStates {
		return "invalid"
	}
	return stateNames[s]
}

// Think is a per-tic behavior run while a state is current.
type Think int

const (
	ThinkNone Think = iota
	ThinkStand
	ThinkPath
	ThinkChase
	ThinkDogChase
	ThinkGhosts
	ThinkBossChase
	ThinkFake
	ThinkProjectile
	ThinkBJRun
	ThinkBJJump
	ThinkDormant
)

// Action runs once when a state's duration runs out.
type Action int

const (
	ActionNone Action = iota
	ActionShoot
	ActionBite
	ActionThrowNeedle
	ActionThrowRocket
	ActionFakeFire
	ActionSmoke
	ActionDeathScream
	ActionHitlerMorph
	ActionStartDeathCam
	ActionBJDone
)

// Rotate selects how a state's sprite follows the viewing angle.
type Rotate int

const (
	RotateNone Rotate = iota
	RotateCreature
	RotateProjectile
)

// StateInfo is one record of a state table. A zero Tics state never times
// out and is driven by its think alone.
type StateInfo struct {
	Rotate  Rotate
	Sprite  int
	Tics    int
	Think   Think
	Action  Action
	Next    StateID
	defined bool
}

// StateTable maps every state to its record for one actor type.
type StateTable [NumStates]StateInfo

// Sprite frame layout shared by all types. Rotating frames use eight
// consecutive slots.
const (
	frameStand  = 0
	frameWalk1  = 8
	frameWalk2  = 16
	frameWalk3  = 24
	frameWalk4  = 32
	framePain1  = 40
	framePain2  = 41
	frameShoot1 = 42
	frameDie1   = 51
	frameDead   = 60
)

// GuardStandTics is how long a standing guard waits before patrolling.
const GuardStandTics = 140

var stateTables [level.NumActorTypes]StateTable

// StateTableFor returns the table of an actor type.
func StateTableFor(t level.ActorType) *StateTable {
	return &stateTables[t]
}

func st(rot Rotate, sprite, tics int, think Think, action Action, next StateID) StateInfo {
	return StateInfo{Rotate: rot, Sprite: sprite, Tics: tics, Think: think, Action: action, Next: next, defined: true}
}

var (
	pathCycle   = [6]StateID{StPath1, StPath1s, StPath2, StPath3, StPath3s, StPath4}
	chaseCycle  = [6]StateID{StChase1, StChase1s, StChase2, StChase3, StChase3s, StChase4}
	cycleFrames = [6]int{frameWalk1, frameWalk1, frameWalk2, frameWalk3, frameWalk3, frameWalk4}
)

// walk fills a six-step walking cycle. The short "s" steps carry no think.
func walk(t *StateTable, ids [6]StateID, think Think, tics [6]int) {
	for i, id := range ids {
		th := think
		if i == 1 || i == 4 {
			th = ThinkNone
		}
		t[id] = st(RotateCreature, cycleFrames[i], tics[i], th, ActionNone, ids[(i+1)%6])
	}
}

type step struct {
	tics   int
	action Action
}

// chain fills consecutive states starting at first, ending in next.
func chain(t *StateTable, first StateID, frame int, steps []step, next StateID) {
	for i, s := range steps {
		id := first + StateID(i)
		to := id + 1
		if i == len(steps)-1 {
			to = next
		}
		t[id] = st(RotateNone, frame+i, s.tics, ThinkNone, s.action, to)
	}
}

func repeat(n, tics int, action Action) []step {
	out := make([]step, n)
	for i := range out {
		out[i] = step{tics, action}
	}
	return out
}

var (
	humanPath  = [6]int{20, 5, 15, 20, 5, 15}
	humanChase = [6]int{10, 3, 8, 10, 3, 8}
)

func standing(t *StateTable, tics int, next StateID) {
	t[StStand] = st(RotateCreature, frameStand, tics, ThinkStand, ActionNone, next)
	t[StDormant] = st(RotateCreature, frameStand, 0, ThinkDormant, ActionNone, StDormant)
}

func pains(t *StateTable) {
	t[StPain] = st(RotateNone, framePain1, 10, ThinkNone, ActionNone, StChase1)
	t[StPain1] = st(RotateNone, framePain2, 10, ThinkNone, ActionNone, StChase1)
}

func dead(t *StateTable, tics int, action Action) {
	t[StDead] = st(RotateNone, frameDead, tics, ThinkNone, action, StDead)
}

func init() {
	var t *StateTable

	t = &stateTables[level.ActorGuard]
	standing(t, GuardStandTics, StPath1)
	walk(t, pathCycle, ThinkPath, humanPath)
	pains(t)
	chain(t, StShoot1, frameShoot1, []step{{20, ActionNone}, {20, ActionShoot}, {20, ActionNone}}, StChase1)
	walk(t, chaseCycle, ThinkChase, humanChase)
	chain(t, StDie1, frameDie1, []step{{15, ActionDeathScream}, {15, ActionNone}, {15, ActionNone}}, StDead)
	dead(t, 0, ActionNone)

	t = &stateTables[level.ActorOfficer]
	standing(t, 0, StStand)
	walk(t, pathCycle, ThinkPath, humanPath)
	pains(t)
	chain(t, StShoot1, frameShoot1, []step{{6, ActionNone}, {20, ActionShoot}, {10, ActionNone}}, StChase1)
	walk(t, chaseCycle, ThinkChase, humanChase)
	chain(t, StDie1, frameDie1, []step{{11, ActionDeathScream}, {11, ActionNone}, {11, ActionNone}}, StDead)
	dead(t, 0, ActionNone)

	t = &stateTables[level.ActorSS]
	standing(t, 0, StStand)
	walk(t, pathCycle, ThinkPath, humanPath)
	pains(t)
	chain(t, StShoot1, frameShoot1, []step{
		{20, ActionNone}, {20, ActionShoot}, {10, ActionNone}, {10, ActionShoot},
		{10, ActionNone}, {10, ActionShoot}, {10, ActionNone}, {10, ActionShoot}, {10, ActionNone},
	}, StChase1)
	walk(t, chaseCycle, ThinkChase, humanChase)
	chain(t, StDie1, frameDie1, []step{{15, ActionDeathScream}, {15, ActionNone}, {15, ActionNone}}, StDead)
	dead(t, 0, ActionNone)

	t = &stateTables[level.ActorDog]
	standing(t, 0, StStand)
	walk(t, pathCycle, ThinkPath, humanPath)
	chain(t, StShoot1, frameShoot1, []step{
		{10, ActionNone}, {10, ActionBite}, {10, ActionNone}, {10, ActionNone}, {10, ActionNone},
	}, StChase1)
	walk(t, chaseCycle, ThinkDogChase, humanChase)
	chain(t, StDie1, frameDie1, []step{{15, ActionDeathScream}, {15, ActionNone}, {15, ActionNone}}, StDead)
	dead(t, 0, ActionNone)

	t = &stateTables[level.ActorMutant]
	standing(t, 0, StStand)
	walk(t, pathCycle, ThinkPath, humanPath)
	pains(t)
	chain(t, StShoot1, frameShoot1, []step{{6, ActionShoot}, {20, ActionNone}, {10, ActionShoot}, {20, ActionNone}}, StChase1)
	walk(t, chaseCycle, ThinkChase, humanChase)
	chain(t, StDie1, frameDie1, []step{{7, ActionDeathScream}, {7, ActionNone}, {7, ActionNone}, {7, ActionNone}}, StDead)
	dead(t, 0, ActionNone)

	for _, typ := range []level.ActorType{level.ActorHans, level.ActorGretel} {
		t = &stateTables[typ]
		standing(t, 0, StStand)
		walk(t, chaseCycle, ThinkChase, humanChase)
		chain(t, StShoot1, frameShoot1, append(append([]step{{30, ActionNone}}, repeat(6, 10, ActionShoot)...), step{10, ActionNone}), StChase1)
		chain(t, StDie1, frameDie1, []step{{15, ActionDeathScream}, {15, ActionNone}, {15, ActionNone}}, StDead)
		dead(t, 0, ActionNone)
	}

	t = &stateTables[level.ActorSchabbs]
	standing(t, 0, StStand)
	walk(t, chaseCycle, ThinkBossChase, humanChase)
	chain(t, StShoot1, frameShoot1, []step{{30, ActionNone}, {10, ActionThrowNeedle}}, StChase1)
	t[StDeathCam] = st(RotateNone, frameWalk1, 1, ThinkNone, ActionNone, StDie1)
	chain(t, StDie1, frameDie1, []step{{10, ActionNone}, {10, ActionNone}, {10, ActionNone}}, StDead)
	dead(t, 20, ActionStartDeathCam)

	t = &stateTables[level.ActorGift]
	standing(t, 0, StStand)
	walk(t, chaseCycle, ThinkBossChase, humanChase)
	chain(t, StShoot1, frameShoot1, []step{{30, ActionNone}, {10, ActionThrowRocket}}, StChase1)
	t[StDeathCam] = st(RotateNone, frameWalk1, 1, ThinkNone, ActionNone, StDie1)
	chain(t, StDie1, frameDie1, []step{{1, ActionDeathScream}, {10, ActionNone}, {10, ActionNone}, {10, ActionNone}}, StDead)
	dead(t, 20, ActionStartDeathCam)

	t = &stateTables[level.ActorFat]
	standing(t, 0, StStand)
	walk(t, chaseCycle, ThinkBossChase, humanChase)
	chain(t, StShoot1, frameShoot1, append([]step{{30, ActionNone}, {10, ActionThrowRocket}}, repeat(4, 10, ActionShoot)...), StChase1)
	t[StDeathCam] = st(RotateNone, frameWalk1, 1, ThinkNone, ActionNone, StDie1)
	chain(t, StDie1, frameDie1, []step{{1, ActionDeathScream}, {10, ActionNone}, {10, ActionNone}, {10, ActionNone}}, StDead)
	dead(t, 20, ActionStartDeathCam)

	t = &stateTables[level.ActorFakeHitler]
	standing(t, 0, StStand)
	walk(t, chaseCycle, ThinkFake, humanChase)
	chain(t, StShoot1, frameShoot1, append(repeat(8, 8, ActionFakeFire), step{8, ActionNone}), StChase1)
	chain(t, StDie1, frameDie1, append([]step{{10, ActionDeathScream}}, repeat(4, 10, ActionNone)...), StDead)
	dead(t, 0, ActionNone)

	t = &stateTables[level.ActorMechaHitler]
	standing(t, 0, StStand)
	walk(t, chaseCycle, ThinkChase, [6]int{10, 6, 8, 10, 6, 8})
	chain(t, StShoot1, frameShoot1, append([]step{{30, ActionNone}}, repeat(5, 10, ActionShoot)...), StChase1)
	chain(t, StDie1, frameDie1, []step{{10, ActionDeathScream}, {10, ActionNone}, {10, ActionHitlerMorph}}, StDead)
	dead(t, 0, ActionNone)

	t = &stateTables[level.ActorHitler]
	walk(t, chaseCycle, ThinkChase, [6]int{6, 4, 2, 6, 4, 2})
	chain(t, StShoot1, frameShoot1, append([]step{{30, ActionNone}}, repeat(5, 10, ActionShoot)...), StChase1)
	t[StDeathCam] = st(RotateNone, frameWalk1, 1, ThinkNone, ActionNone, StDie1)
	chain(t, StDie1, frameDie1, append([]step{{1, ActionDeathScream}}, repeat(7, 10, ActionNone)...), StDead)
	dead(t, 20, ActionStartDeathCam)

	for _, typ := range []level.ActorType{level.ActorBlinky, level.ActorClyde, level.ActorPinky, level.ActorInky} {
		t = &stateTables[typ]
		t[StChase1] = st(RotateNone, frameWalk1, 10, ThinkGhosts, ActionNone, StChase2)
		t[StChase2] = st(RotateNone, frameWalk2, 10, ThinkGhosts, ActionNone, StChase1)
	}

	t = &stateTables[level.ActorNeedle]
	for i := range 4 {
		id := StChase1 + StateID(i)
		next := id + 1
		if i == 3 {
			next = StChase1
		}
		t[id] = st(RotateNone, i, 6, ThinkProjectile, ActionNone, next)
	}

	t = &stateTables[level.ActorFire]
	t[StChase1] = st(RotateNone, 0, 6, ThinkProjectile, ActionNone, StChase2)
	t[StChase2] = st(RotateNone, 1, 6, ThinkProjectile, ActionNone, StChase1)

	t = &stateTables[level.ActorRocket]
	t[StChase1] = st(RotateProjectile, 0, 3, ThinkProjectile, ActionSmoke, StChase1)
	chain(t, StDie1, frameDie1, repeat(3, 6, ActionNone), StRemove)

	t = &stateTables[level.ActorSmoke]
	chain(t, StChase1, 0, repeat(4, 3, ActionNone), StRemove)

	t = &stateTables[level.ActorBJ]
	walk(t, chaseCycle, ThinkBJRun, [6]int{12, 3, 8, 12, 3, 8})
	chain(t, StShoot1, frameShoot1, []step{{14, ActionNone}, {14, ActionNone}, {14, ActionNone}, {300, ActionBJDone}}, StShoot4)
	for id := StShoot1; id <= StShoot3; id++ {
		t[id].Think = ThinkBJJump
	}
}
