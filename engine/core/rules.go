package core

// Rules holds every tunable constant of the simulation. All speeds and
// durations are per tick.
type Rules struct {
	UnitHP int

	// Bullets
	ProjectileSpeed  float64
	ArrivalDistance  float64 // projectiles closer than this stop moving
	HitRadius        float64
	BulletDamage     int
	CoverDamage      int
	SuppressionTicks int
	ExpireOnArrival  bool // drop projectiles that reach their point without a hit
	SmokeLife        int
	SmokeRise        float64

	// Artillery
	ExplosionMaxRadius      float64
	ExplosionGrowth         float64
	ExplosionDamage         int
	RepeatExplosionDamage   bool // damage every tick a unit is inside, not once per blast
	ShakeTicks              int
	ArtilleryChance         float64
	ArtilleryBandMinX       float64
	ArtilleryBandWidth      float64
	ArtilleryY              float64
	PlayerArtilleryCooldown int

	// Riflemen
	FireRange   float64
	ReloadTicks int
	ReturnFire  bool // player units shoot back
	MoveOrders  bool // units walk to their move order target
	MoveSpeed   float64

	// Vehicles
	VehicleHP     int
	VehicleSpeed  float64
	SiegeDistance float64
}

// DefaultRules returns the stock battle rules
func DefaultRules() Rules {
	return Rules{
		UnitHP: 100,

		ProjectileSpeed:  7,
		ArrivalDistance:  2,
		HitRadius:        6,
		BulletDamage:     20,
		CoverDamage:      10,
		SuppressionTicks: 120,
		ExpireOnArrival:  true,
		SmokeLife:        30,
		SmokeRise:        0.5,

		ExplosionMaxRadius:      60,
		ExplosionGrowth:         3,
		ExplosionDamage:         40,
		RepeatExplosionDamage:   true,
		ShakeTicks:              10,
		ArtilleryChance:         0.005,
		ArtilleryBandMinX:       300,
		ArtilleryBandWidth:      600,
		ArtilleryY:              600,
		PlayerArtilleryCooldown: 300,

		FireRange:   300,
		ReloadTicks: 90,
		ReturnFire:  true,
		MoveOrders:  true,
		MoveSpeed:   1,

		VehicleHP:     300,
		VehicleSpeed:  0.8,
		SiegeDistance: 5,
	}
}

// Scenario describes the initial deployment of a battle
type Scenario struct {
	Width, Height  float64
	UnitsPerSide   int
	Spacing        float64
	FirstColumn    float64
	PlayerRow      float64
	EnemyRow       float64
	MachineGunners []int // per-side slot indices armed with machine guns
	Structures     []Structure
	Vehicles       []VehicleSpawn
}

// VehicleSpawn places a vehicle at battle start
type VehicleSpawn struct {
	X, Y float64
	Side Side
}

// DefaultScenario is two trench lines with eight riflemen each
func DefaultScenario() Scenario {
	return Scenario{
		Width:        1200,
		Height:       800,
		UnitsPerSide: 8,
		Spacing:      30,
		FirstColumn:  300,
		PlayerRow:    700,
		EnemyRow:     175,
		Structures: []Structure{
			{Rect: Rect{X: 200, Y: 150, W: 800, H: 60}, Side: SideEnemy, HP: 500},
			{Rect: Rect{X: 200, Y: 650, W: 800, H: 60}, Side: SidePlayer, HP: 500},
		},
	}
}
