package onboarding

import "slices"

// MaxPhotos 单个资料最多可添加的照片数量
const MaxPhotos = 6

// Gender 性别选项
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// TerrainPreference 偏好的雪道类型，可多选
type TerrainPreference string

const (
	TerrainGroomed     TerrainPreference = "groomed"
	TerrainMoguls      TerrainPreference = "moguls"
	TerrainBackcountry TerrainPreference = "backcountry"
	TerrainPark        TerrainPreference = "park"
)

// SkillLevel 滑雪水平，单选
type SkillLevel string

const (
	SkillGreen       SkillLevel = "green"
	SkillBlue        SkillLevel = "blue"
	SkillBlack       SkillLevel = "black"
	SkillDoubleBlack SkillLevel = "double black"
)

// SpeedPreference 速度偏好，单选
type SpeedPreference string

const (
	SpeedRelaxed  SpeedPreference = "relaxed"
	SpeedModerate SpeedPreference = "moderate"
	SpeedFast     SpeedPreference = "fast"
)

// 各枚举字段的固定选项集合，顺序即前端展示顺序
var (
	GenderOptions  = []Gender{GenderMale, GenderFemale, GenderOther}
	TerrainOptions = []TerrainPreference{TerrainGroomed, TerrainMoguls, TerrainBackcountry, TerrainPark}
	SkillLevels    = []SkillLevel{SkillGreen, SkillBlue, SkillBlack, SkillDoubleBlack}
	SpeedOptions   = []SpeedPreference{SpeedRelaxed, SpeedModerate, SpeedFast}
)

func (g Gender) Valid() bool            { return slices.Contains(GenderOptions, g) }
func (t TerrainPreference) Valid() bool { return slices.Contains(TerrainOptions, t) }
func (s SkillLevel) Valid() bool        { return slices.Contains(SkillLevels, s) }
func (s SpeedPreference) Valid() bool   { return slices.Contains(SpeedOptions, s) }

// Draft 引导过程中尚未持久化的资料。
// 生日保持 MM/DD/YYYY 的展示格式，滑雪年限保持原始文本，二者都在提交时才转换。
type Draft struct {
	Name             string              `json:"name"`
	Birthday         string              `json:"birthday"`
	Gender           Gender              `json:"gender"`
	Location         string              `json:"location"`
	YearsSkiing      string              `json:"years_skiing"`
	PreferredTerrain []TerrainPreference `json:"preferred_terrain"`
	SkillLevel       SkillLevel          `json:"skill_level"`
	SpeedPreference  SpeedPreference     `json:"speed_preference"`
	Photos           []string            `json:"photos"` // 本地素材引用，第一张为主图
}

// HasTerrain 是否已选择某种雪道
func (d Draft) HasTerrain(t TerrainPreference) bool {
	return slices.Contains(d.PreferredTerrain, t)
}

// MainPhoto 返回主图引用，没有照片时返回空串
func (d Draft) MainPhoto() string {
	if len(d.Photos) == 0 {
		return ""
	}
	return d.Photos[0]
}

// clone 深拷贝切片字段，保证转换函数不会修改调用方持有的值
func (d Draft) clone() Draft {
	d.PreferredTerrain = slices.Clone(d.PreferredTerrain)
	d.Photos = slices.Clone(d.Photos)
	return d
}
