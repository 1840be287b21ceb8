// ABOUTME: Static drill table for the weekly shooting plan.
// ABOUTME: Mon/Thu free throws and mid-range, Tue/Fri threes, Wed/Sat inside, Sun light.
package drills

import "github.com/harperreed/hoops/internal/models"

var everyDay = []int{0, 1, 2, 3, 4, 5, 6}

// table is declaration-ordered; Select preserves this order.
var table = []models.Drill{
	// Monday & Thursday: free throws + mid-range
	{
		ID:             "ft-form-basics",
		Name:           "Free Throw Fundamentals",
		Description:    "Work the free throw mechanics: foot placement, elbow aligned, follow-through. 10 straight shots focusing on form.",
		VideoReference: "https://www.youtube.com/watch?v=tLLibi_YQGY",
		Tag:            models.TagFor(models.ShotFreeThrow),
		Sets:           3,
		Reps:           10,
		Days:           []int{1, 4},
	},
	{
		ID:             "ft-pressure",
		Name:           "Free Throws Under Pressure",
		Description:    "Simulate a game situation: shoot 2 free throws, rest 30s, repeat. Goal: 80%+ makes.",
		VideoReference: "https://www.youtube.com/watch?v=GWbtqBXYjx4",
		Tag:            models.TagFor(models.ShotFreeThrow),
		Sets:           5,
		Reps:           2,
		Days:           []int{1, 4},
	},
	{
		ID:             "mr-elbow",
		Name:           "Mid-Range from the Elbow",
		Description:    "Shots from the elbow area. Work both sides. Focus on footwork and balance.",
		VideoReference: "https://www.youtube.com/watch?v=v7RGXwqJB7E",
		Tag:            models.TagFor(models.ShotMidRange),
		Sets:           3,
		Reps:           10,
		Days:           []int{1, 4},
	},
	{
		ID:             "mr-baseline",
		Name:           "Mid-Range from the Baseline",
		Description:    "Shots from the baseline. Practice the pull-up jumper coming off the baseline on both sides.",
		VideoReference: "https://www.youtube.com/watch?v=K3wgpJMbRHs",
		Tag:            models.TagFor(models.ShotMidRange),
		Sets:           3,
		Reps:           8,
		Days:           []int{1, 4},
	},

	// Tuesday & Friday: threes + combos
	{
		ID:             "3pt-catch-shoot",
		Name:           "Catch & Shoot Threes",
		Description:    "Catch-and-shoot from the 5 spots on the arc. Focus on a clean catch and a quick release with good form.",
		VideoReference: "https://www.youtube.com/watch?v=f1CnGTwc-eo",
		Tag:            models.TagFor(models.ShotThreePointer),
		Sets:           3,
		Reps:           5,
		Days:           []int{2, 5},
	},
	{
		ID:             "3pt-off-dribble",
		Name:           "Threes off the Dribble",
		Description:    "Dribble into the three-point line and shoot. Practice step-back and pull-up threes from different spots.",
		VideoReference: "https://www.youtube.com/watch?v=GKFBVHJfGKM",
		Tag:            models.TagFor(models.ShotThreePointer),
		Sets:           3,
		Reps:           8,
		Days:           []int{2, 5},
	},
	{
		ID:             "3pt-corner",
		Name:           "Corner Three Specialist",
		Description:    "Corner threes only. Shortest three on the floor; work on consistency.",
		VideoReference: "https://www.youtube.com/watch?v=8_XFnMdWeyQ",
		Tag:            models.TagFor(models.ShotThreePointer),
		Sets:           4,
		Reps:           5,
		Days:           []int{2, 5},
	},
	{
		ID:             "combo-crossover-pull",
		Name:           "Crossover + Pull-up",
		Description:    "Crossover dribble into a mid-range pull-up jumper. Work both directions.",
		VideoReference: "https://www.youtube.com/watch?v=Y2mOfCKSyEQ",
		Tag:            models.TagCombo,
		Sets:           3,
		Reps:           6,
		Days:           []int{2, 5},
	},

	// Wednesday & Saturday: layups + post
	{
		ID:             "layup-package",
		Name:           "Layup Package",
		Description:    "Practice different finishes: finger roll, reverse layup, euro step. Alternate left and right.",
		VideoReference: "https://www.youtube.com/watch?v=rGcoQMHEUS0",
		Tag:            models.TagFor(models.ShotLayup),
		Sets:           3,
		Reps:           10,
		Days:           []int{3, 6},
	},
	{
		ID:             "layup-contact",
		Name:           "Finishing Through Contact",
		Description:    "Finishes while simulating contact. Practice and-one finishes.",
		VideoReference: "https://www.youtube.com/watch?v=XzSSHGJKzSs",
		Tag:            models.TagFor(models.ShotLayup),
		Sets:           3,
		Reps:           8,
		Days:           []int{3, 6},
	},
	{
		ID:             "post-hook",
		Name:           "Post Hook Shot",
		Description:    "Hook shots from both sides of the paint. Focus on footwork and a soft finish.",
		VideoReference: "https://www.youtube.com/watch?v=1AtRRqMTJcY",
		Tag:            models.TagFor(models.ShotPost),
		Sets:           3,
		Reps:           8,
		Days:           []int{3, 6},
	},
	{
		ID:             "post-fadeaway",
		Name:           "Post Fadeaway",
		Description:    "Start with your back to the basket, turn, and shoot with a fade.",
		VideoReference: "https://www.youtube.com/watch?v=b0gMz-cGzXk",
		Tag:            models.TagFor(models.ShotPost),
		Sets:           3,
		Reps:           6,
		Days:           []int{3, 6},
	},

	// Sunday: light session
	{
		ID:             "sun-shootaround",
		Name:           "Free Shootaround",
		Description:    "Unstructured shooting. No pressure; get a feel for the ball and build confidence.",
		VideoReference: "https://www.youtube.com/watch?v=TaCnwHS3fMI",
		Tag:            models.TagFor(models.ShotFreeThrow),
		Sets:           1,
		Reps:           20,
		Days:           []int{0},
	},
	{
		ID:             "sun-spot-shooting",
		Name:           "Relaxed Spot Shooting",
		Description:    "Pick 5 favorite spots and take 5 shots from each. Easy rhythm, focus on form.",
		VideoReference: "https://www.youtube.com/watch?v=GsZDHgVGiII",
		Tag:            models.TagFor(models.ShotMidRange),
		Sets:           5,
		Reps:           5,
		Days:           []int{0},
	},

	// Warmups, every day
	{
		ID:             "warmup-mikan",
		Name:           "Mikan Drill",
		Description:    "Classic warmup: alternating layups under the basket. Left, right, no stopping.",
		VideoReference: "https://www.youtube.com/watch?v=Wr5HQpBcKBo",
		Tag:            models.TagWarmup,
		Sets:           2,
		Reps:           10,
		Days:           everyDay,
	},
	{
		ID:             "warmup-form-shooting",
		Name:           "Form Shooting",
		Description:    "Short shots to warm up. Start close to the rim and move out gradually.",
		VideoReference: "https://www.youtube.com/watch?v=FPn_rKHGKNQ",
		Tag:            models.TagWarmup,
		Sets:           1,
		Reps:           15,
		Days:           everyDay,
	},
}
