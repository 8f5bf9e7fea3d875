package systems

import (
	"github.com/spatialkit/reticle/input/math"
)

// Pose is an immutable position/orientation snapshot, produced per frame
// and never accumulated.
type Pose struct {
	Position    math.Vec3
	Orientation math.Quaternion
}

// Default arm model tuning. These are empirically chosen parameters, not
// derived values; they are kept as named defaults so the model stays
// adjustable (see ArmModelParams and the TOML config).
const (
	// Share of the total relative rotation assigned to the wrist before
	// extension modulation.
	DefaultElbowBendRatio float32 = 0.4
	// How strongly arm extension shifts rotation toward the wrist.
	DefaultExtensionRatioWeight float32 = 0.4
	// Angular speed (rad/s, ~35 deg/s) below which controller motion is
	// assumed to be wrist-only and does not imply torso rotation.
	DefaultMinAngularSpeed float32 = 0.61
	// Controller pitch range (degrees) mapped linearly onto extension
	// ratio [0,1].
	DefaultMinExtensionAngleDeg float32 = 11.0
	DefaultMaxExtensionAngleDeg float32 = 50.0

	// Fraction divisor for root re-alignment: faster apparent turning
	// yields faster convergence toward head yaw.
	rootSlerpDivisor float32 = 10.0
)

// Default joint offsets in meters, in root-local space.
var (
	DefaultHeadElbowOffset       = math.NewVec3(0.155, -0.465, -0.15)
	DefaultElbowWristOffset      = math.NewVec3(0, 0, -0.25)
	DefaultWristControllerOffset = math.NewVec3(0, 0, 0.05)
	DefaultArmExtensionOffset    = math.NewVec3(-0.08, 0.14, 0.08)
)

// ArmModelParams are the tunable parameters of the arm model.
type ArmModelParams struct {
	HeadElbowOffset       math.Vec3
	ElbowWristOffset      math.Vec3
	WristControllerOffset math.Vec3
	ArmExtensionOffset    math.Vec3
	ElbowBendRatio        float32
	ExtensionRatioWeight  float32
	MinAngularSpeed       float32
	MinExtensionAngleDeg  float32
	MaxExtensionAngleDeg  float32
}

func DefaultArmModelParams() ArmModelParams {
	return ArmModelParams{
		HeadElbowOffset:       DefaultHeadElbowOffset,
		ElbowWristOffset:      DefaultElbowWristOffset,
		WristControllerOffset: DefaultWristControllerOffset,
		ArmExtensionOffset:    DefaultArmExtensionOffset,
		ElbowBendRatio:        DefaultElbowBendRatio,
		ExtensionRatioWeight:  DefaultExtensionRatioWeight,
		MinAngularSpeed:       DefaultMinAngularSpeed,
		MinExtensionAngleDeg:  DefaultMinExtensionAngleDeg,
		MaxExtensionAngleDeg:  DefaultMaxExtensionAngleDeg,
	}
}

// ExtensionRatio maps a controller pitch angle in degrees onto [0,1]:
// exactly 0 at or below the minimum extension angle, exactly 1 at or above
// the maximum, linear between.
func (p ArmModelParams) ExtensionRatio(pitchDeg float32) float32 {
	return math.Clamp((pitchDeg-p.MinExtensionAngleDeg)/(p.MaxExtensionAngleDeg-p.MinExtensionAngleDeg), 0.0, 1.0)
}

// ArmModel synthesizes a plausible wrist pose from head pose plus an
// orientation-only controller reading. The only cross-frame state is the
// smoothed root (shoulder/torso) orientation and the previous controller
// orientation used to estimate angular speed. Constructed once per
// session, updated every frame.
type ArmModel struct {
	params ArmModelParams

	rootOrientation math.Quaternion

	lastControllerOrientation math.Quaternion
	hasLast                   bool

	elbowPosition math.Vec3
	wristPosition math.Vec3
}

func NewArmModel(params ArmModelParams) *ArmModel {
	return &ArmModel{
		params:          params,
		rootOrientation: math.NewQuatIdentity(),
	}
}

// SetParams swaps the tuning parameters. Applied from the next Update.
func (a *ArmModel) SetParams(params ArmModelParams) {
	a.params = params
}

// RootOrientation returns the current smoothed torso-facing estimate.
func (a *ArmModel) RootOrientation() math.Quaternion {
	return a.rootOrientation
}

// Update synthesizes the wrist pose for this frame. The returned position
// is biomechanically smoothed; the returned orientation is the raw input
// controller orientation, so pointing stays unlagged.
func (a *ArmModel) Update(headOrientation math.Quaternion, headPosition math.Vec3, controllerOrientation math.Quaternion, elapsedSeconds float64) Pose {
	headYaw := headOrientation.YawOrientation()

	// Root orientation follows head yaw. Fast controller motion implies
	// the torso is turning, so the root chases the head smoothly,
	// proportional to the apparent turn. Slow motion is assumed to be
	// wrist-only against an already-settled torso, so the root snaps.
	var angleDelta float32
	if a.hasLast {
		angleDelta = a.lastControllerOrientation.AngleTo(controllerOrientation)
	}
	var angularSpeed float32
	if elapsedSeconds > 0 {
		angularSpeed = angleDelta / float32(elapsedSeconds)
	}
	if a.hasLast && angularSpeed > a.params.MinAngularSpeed {
		fraction := math.Clamp(angleDelta/rootSlerpDivisor, 0.0, 1.0)
		a.rootOrientation = a.rootOrientation.Slerp(headYaw, fraction)
	} else {
		a.rootOrientation = headYaw
	}
	a.lastControllerOrientation = controllerOrientation
	a.hasLast = true

	// Controller orientation relative to the root isolates arm-relative
	// motion from torso-relative motion.
	relative := a.rootOrientation.Inverse().Mul(controllerOrientation)

	pitchDeg := math.RadToDeg(relative.PitchAngle())
	extensionRatio := a.params.ExtensionRatio(pitchDeg)

	a.elbowPosition = headPosition.
		Add(a.params.HeadElbowOffset).
		Add(a.params.ArmExtensionOffset.MulScalar(extensionRatio))

	// Split the relative rotation between elbow and wrist. The wrist's
	// share grows with extension and is damped as the total rotation
	// approaches a half turn, where the blend would otherwise produce an
	// implausible near-inversion.
	totalAngleDeg := math.RadToDeg(math.NewQuatIdentity().AngleTo(relative))
	r := totalAngleDeg / 180.0
	damping := 1.0 - r*r*r*r
	wristShare := damping * (a.params.ElbowBendRatio + (1.0-a.params.ElbowBendRatio)*extensionRatio*a.params.ExtensionRatioWeight)

	wristOrientation := math.NewQuatIdentity().Slerp(relative, wristShare)
	elbowOrientation := relative.Mul(wristOrientation.Inverse())

	// Forward kinematics: controller offset under the wrist joint, wrist
	// offset under the elbow joint, elbow anchored at the torso.
	wrist := wristOrientation.RotateVec3(a.params.WristControllerOffset)
	wrist = wrist.Add(a.params.ElbowWristOffset)
	wrist = elbowOrientation.RotateVec3(wrist)
	wrist = wrist.Add(a.elbowPosition)
	a.wristPosition = wrist

	position := wrist.Add(a.params.ArmExtensionOffset.MulScalar(extensionRatio))
	position = a.rootOrientation.RotateVec3(position)

	return Pose{
		Position:    position,
		Orientation: controllerOrientation,
	}
}
