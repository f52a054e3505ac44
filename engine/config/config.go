package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1siamBot/trench-sim/engine/core"
	"github.com/spf13/viper"
)

// FileName is the optional config file looked up in the config directory
const FileName = "trenchsim.cfg.json"

// Config holds every tunable of a battle
type Config struct {
	LogLevel   string            `json:"logLevel" mapstructure:"logLevel"`
	Seed       int64             `json:"seed" mapstructure:"seed"`
	TickRate   float64           `json:"tickRate" mapstructure:"tickRate"`
	World      WorldConfig       `json:"world" mapstructure:"world"`
	Units      UnitsConfig       `json:"units" mapstructure:"units"`
	Combat     CombatConfig      `json:"combat" mapstructure:"combat"`
	Artillery  ArtilleryConfig   `json:"artillery" mapstructure:"artillery"`
	AI         AIConfig          `json:"ai" mapstructure:"ai"`
	Vehicles   VehiclesConfig    `json:"vehicles" mapstructure:"vehicles"`
	Structures []StructureConfig `json:"structures" mapstructure:"structures"`
	Player     PlayerConfig      `json:"player" mapstructure:"player"`
	Render     RenderConfig      `json:"render" mapstructure:"render"`
}

// WorldConfig is the size of the battlefield
type WorldConfig struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

// UnitsConfig places the two rifle lines
type UnitsConfig struct {
	HP             int     `json:"hp" mapstructure:"hp"`
	PerSide        int     `json:"perSide" mapstructure:"perSide"`
	Spacing        float64 `json:"spacing" mapstructure:"spacing"`
	FirstColumn    float64 `json:"firstColumn" mapstructure:"firstColumn"`
	PlayerRow      float64 `json:"playerRow" mapstructure:"playerRow"`
	EnemyRow       float64 `json:"enemyRow" mapstructure:"enemyRow"`
	MachineGunners []int   `json:"machineGunners" mapstructure:"machineGunners"`
}

// CombatConfig covers bullets and their smoke
type CombatConfig struct {
	ProjectileSpeed  float64 `json:"projectileSpeed" mapstructure:"projectileSpeed"`
	ArrivalDistance  float64 `json:"arrivalDistance" mapstructure:"arrivalDistance"`
	HitRadius        float64 `json:"hitRadius" mapstructure:"hitRadius"`
	BulletDamage     int     `json:"bulletDamage" mapstructure:"bulletDamage"`
	CoverDamage      int     `json:"coverDamage" mapstructure:"coverDamage"`
	SuppressionTicks int     `json:"suppressionTicks" mapstructure:"suppressionTicks"`
	SmokeLife        int     `json:"smokeLife" mapstructure:"smokeLife"`
	SmokeRise        float64 `json:"smokeRise" mapstructure:"smokeRise"`
	ExpireOnArrival  bool    `json:"expireOnArrival" mapstructure:"expireOnArrival"`
}

// ArtilleryConfig covers strikes from both sides
type ArtilleryConfig struct {
	MaxRadius      float64 `json:"maxRadius" mapstructure:"maxRadius"`
	Growth         float64 `json:"growth" mapstructure:"growth"`
	Damage         int     `json:"damage" mapstructure:"damage"`
	ShakeTicks     int     `json:"shakeTicks" mapstructure:"shakeTicks"`
	RepeatDamage   bool    `json:"repeatDamage" mapstructure:"repeatDamage"`
	BandMinX       float64 `json:"bandMinX" mapstructure:"bandMinX"`
	BandWidth      float64 `json:"bandWidth" mapstructure:"bandWidth"`
	StrikeY        float64 `json:"strikeY" mapstructure:"strikeY"`
	Chance         float64 `json:"chance" mapstructure:"chance"`
	PlayerCooldown int     `json:"playerCooldown" mapstructure:"playerCooldown"`
}

// AIConfig covers rifle handling and the enemy's temperament
type AIConfig struct {
	Range       float64 `json:"range" mapstructure:"range"`
	ReloadTicks int     `json:"reloadTicks" mapstructure:"reloadTicks"`
	Difficulty  string  `json:"difficulty" mapstructure:"difficulty"`
}

// VehiclesConfig covers siege vehicles
type VehiclesConfig struct {
	HP            int                  `json:"hp" mapstructure:"hp"`
	Speed         float64              `json:"speed" mapstructure:"speed"`
	SiegeDistance float64              `json:"siegeDistance" mapstructure:"siegeDistance"`
	Spawns        []VehicleSpawnConfig `json:"spawns" mapstructure:"spawns"`
}

// VehicleSpawnConfig places a vehicle at battle start
type VehicleSpawnConfig struct {
	X    float64 `json:"x" mapstructure:"x"`
	Y    float64 `json:"y" mapstructure:"y"`
	Side string  `json:"side" mapstructure:"side"`
}

// StructureConfig is one trench or fortification
type StructureConfig struct {
	X    float64 `json:"x" mapstructure:"x"`
	Y    float64 `json:"y" mapstructure:"y"`
	W    float64 `json:"w" mapstructure:"w"`
	H    float64 `json:"h" mapstructure:"h"`
	Side string  `json:"side" mapstructure:"side"`
	HP   int     `json:"hp" mapstructure:"hp"`
}

// PlayerConfig covers how the player's units behave
type PlayerConfig struct {
	ReturnFire bool    `json:"returnFire" mapstructure:"returnFire"`
	MoveOrders bool    `json:"moveOrders" mapstructure:"moveOrders"`
	MoveSpeed  float64 `json:"moveSpeed" mapstructure:"moveSpeed"`
}

// RenderConfig covers presentation
type RenderConfig struct {
	VisionRadius float64 `json:"visionRadius" mapstructure:"visionRadius"`
	Volume       float64 `json:"volume" mapstructure:"volume"` // master cue volume, 0-1
}

func setDefaults(v *viper.Viper) {
	rules := core.DefaultRules()
	sc := core.DefaultScenario()

	v.SetDefault("logLevel", "info")
	v.SetDefault("seed", 0)
	v.SetDefault("tickRate", 60)

	v.SetDefault("world.width", sc.Width)
	v.SetDefault("world.height", sc.Height)

	v.SetDefault("units.hp", rules.UnitHP)
	v.SetDefault("units.perSide", sc.UnitsPerSide)
	v.SetDefault("units.spacing", sc.Spacing)
	v.SetDefault("units.firstColumn", sc.FirstColumn)
	v.SetDefault("units.playerRow", sc.PlayerRow)
	v.SetDefault("units.enemyRow", sc.EnemyRow)
	v.SetDefault("units.machineGunners", []int{})

	v.SetDefault("combat.projectileSpeed", rules.ProjectileSpeed)
	v.SetDefault("combat.arrivalDistance", rules.ArrivalDistance)
	v.SetDefault("combat.hitRadius", rules.HitRadius)
	v.SetDefault("combat.bulletDamage", rules.BulletDamage)
	v.SetDefault("combat.coverDamage", rules.CoverDamage)
	v.SetDefault("combat.suppressionTicks", rules.SuppressionTicks)
	v.SetDefault("combat.smokeLife", rules.SmokeLife)
	v.SetDefault("combat.smokeRise", rules.SmokeRise)
	v.SetDefault("combat.expireOnArrival", rules.ExpireOnArrival)

	v.SetDefault("artillery.maxRadius", rules.ExplosionMaxRadius)
	v.SetDefault("artillery.growth", rules.ExplosionGrowth)
	v.SetDefault("artillery.damage", rules.ExplosionDamage)
	v.SetDefault("artillery.shakeTicks", rules.ShakeTicks)
	v.SetDefault("artillery.repeatDamage", rules.RepeatExplosionDamage)
	v.SetDefault("artillery.bandMinX", rules.ArtilleryBandMinX)
	v.SetDefault("artillery.bandWidth", rules.ArtilleryBandWidth)
	v.SetDefault("artillery.strikeY", rules.ArtilleryY)
	v.SetDefault("artillery.chance", rules.ArtilleryChance)
	v.SetDefault("artillery.playerCooldown", rules.PlayerArtilleryCooldown)

	v.SetDefault("ai.range", rules.FireRange)
	v.SetDefault("ai.reloadTicks", rules.ReloadTicks)
	v.SetDefault("ai.difficulty", "medium")

	v.SetDefault("vehicles.hp", rules.VehicleHP)
	v.SetDefault("vehicles.speed", rules.VehicleSpeed)
	v.SetDefault("vehicles.siegeDistance", rules.SiegeDistance)
	v.SetDefault("vehicles.spawns", []map[string]interface{}{})

	var structures []map[string]interface{}
	for _, s := range sc.Structures {
		structures = append(structures, map[string]interface{}{
			"x": s.X, "y": s.Y, "w": s.W, "h": s.H,
			"side": s.Side.String(), "hp": s.HP,
		})
	}
	v.SetDefault("structures", structures)

	v.SetDefault("player.returnFire", rules.ReturnFire)
	v.SetDefault("player.moveOrders", rules.MoveOrders)
	v.SetDefault("player.moveSpeed", rules.MoveSpeed)

	v.SetDefault("render.visionRadius", core.DefaultVisionRadius)
	v.SetDefault("render.volume", 1.0)
}

// Load reads configuration from the JSON file in configDir over the
// defaults. A missing file leaves the defaults in place.
func Load(configDir string) (*Config, error) {
	setDefaults(viper.GetViper())

	if configDir == "" {
		configDir = "."
	}
	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(viper.GetViper())
}

// Default returns the stock configuration without touching the filesystem
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return cfg
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %v", c.TickRate)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	positive := []struct {
		key   string
		value float64
	}{
		{"combat.projectileSpeed", c.Combat.ProjectileSpeed},
		{"combat.hitRadius", c.Combat.HitRadius},
		{"artillery.growth", c.Artillery.Growth},
		{"artillery.maxRadius", c.Artillery.MaxRadius},
		{"vehicles.speed", c.Vehicles.Speed},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.key, p.value)
		}
	}
	for i, s := range c.Structures {
		if _, err := parseSide(s.Side); err != nil {
			return fmt.Errorf("structures[%d]: %w", i, err)
		}
	}
	for i, s := range c.Vehicles.Spawns {
		if _, err := parseSide(s.Side); err != nil {
			return fmt.Errorf("vehicles.spawns[%d]: %w", i, err)
		}
	}
	return nil
}

func parseSide(s string) (core.Side, error) {
	switch strings.ToLower(s) {
	case "player":
		return core.SidePlayer, nil
	case "enemy":
		return core.SideEnemy, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

// Rules converts the config into simulation rules
func (c *Config) Rules() core.Rules {
	return core.Rules{
		UnitHP: c.Units.HP,

		ProjectileSpeed:  c.Combat.ProjectileSpeed,
		ArrivalDistance:  c.Combat.ArrivalDistance,
		HitRadius:        c.Combat.HitRadius,
		BulletDamage:     c.Combat.BulletDamage,
		CoverDamage:      c.Combat.CoverDamage,
		SuppressionTicks: c.Combat.SuppressionTicks,
		ExpireOnArrival:  c.Combat.ExpireOnArrival,
		SmokeLife:        c.Combat.SmokeLife,
		SmokeRise:        c.Combat.SmokeRise,

		ExplosionMaxRadius:      c.Artillery.MaxRadius,
		ExplosionGrowth:         c.Artillery.Growth,
		ExplosionDamage:         c.Artillery.Damage,
		RepeatExplosionDamage:   c.Artillery.RepeatDamage,
		ShakeTicks:              c.Artillery.ShakeTicks,
		ArtilleryChance:         c.Artillery.Chance,
		ArtilleryBandMinX:       c.Artillery.BandMinX,
		ArtilleryBandWidth:      c.Artillery.BandWidth,
		ArtilleryY:              c.Artillery.StrikeY,
		PlayerArtilleryCooldown: c.Artillery.PlayerCooldown,

		FireRange:   c.AI.Range,
		ReloadTicks: c.AI.ReloadTicks,
		ReturnFire:  c.Player.ReturnFire,
		MoveOrders:  c.Player.MoveOrders,
		MoveSpeed:   c.Player.MoveSpeed,

		VehicleHP:     c.Vehicles.HP,
		VehicleSpeed:  c.Vehicles.Speed,
		SiegeDistance: c.Vehicles.SiegeDistance,
	}
}

// Scenario converts the config into the starting layout. Sides were
// checked by Validate.
func (c *Config) Scenario() core.Scenario {
	sc := core.Scenario{
		Width:          c.World.Width,
		Height:         c.World.Height,
		UnitsPerSide:   c.Units.PerSide,
		Spacing:        c.Units.Spacing,
		FirstColumn:    c.Units.FirstColumn,
		PlayerRow:      c.Units.PlayerRow,
		EnemyRow:       c.Units.EnemyRow,
		MachineGunners: c.Units.MachineGunners,
	}
	for _, s := range c.Structures {
		side, _ := parseSide(s.Side)
		sc.Structures = append(sc.Structures, core.Structure{
			Rect: core.Rect{X: s.X, Y: s.Y, W: s.W, H: s.H},
			Side: side,
			HP:   s.HP,
		})
	}
	for _, v := range c.Vehicles.Spawns {
		side, _ := parseSide(v.Side)
		sc.Vehicles = append(sc.Vehicles, core.VehicleSpawn{X: v.X, Y: v.Y, Side: side})
	}
	return sc
}
