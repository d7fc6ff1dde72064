package service

// 文案模板，占位符: {title} {prize} {max_entries} {end_date}
var shortTemplates = []string{
	"One entry could be all it takes. The {title} puts {prize} on the line, and entering costs you nothing. Add your name today and see where a little luck can take you.",
	"Big changes often start with small moves. Enter the {title} for a shot at {prize}. There is no purchase required and it only takes a moment.",
	"Today could be the day your luck turns. The {title} is giving away {prize}, free to enter and open to everyone who signs up before the deadline.",
	"Why wait for a windfall when you can enter for one? The {title} offers {prize} to one lucky winner. Enter now and keep your fingers crossed.",
	"Good things come to those who enter. Sign up for the {title} and you could be the one walking away with {prize}. Free, fast and simple.",
}

var (
	longIntros = []string{
		"Imagine opening your inbox to find out you just won {prize}.",
		"Picture the moment you find out the {title} winner is you.",
		"What would change if {prize} landed in your account next week?",
		"Winning {prize} could be the fresh start you have been waiting for.",
	}

	longUses = []string{
		"You could book the trip you keep putting off, clear out a few bills, or finally pick up that upgrade you have had your eye on.",
		"Spend it, save it, or share it. With {prize} the decision is entirely yours.",
		"From paying down debt to planning a getaway, {prize} opens up options that were not there yesterday.",
		"It could fund a home project, boost your savings, or cover a celebration with the people you love.",
	}

	longMiddles = []string{
		"A prize like this is about more than money. It is breathing room, a little extra security, and the freedom to say yes to something new.",
		"Every winner starts as an entrant just like you. Someone is going to take home {prize}, and there is no reason it should not be you.",
		"Think of the small stresses that would disappear and the plans that would suddenly feel possible with {prize} behind you.",
	}

	longEntryDetails = []string{
		"You can enter up to {max_entries} times per day until {end_date}. Entering is completely free, so every entry is another chance at no cost.",
		"Come back every day and enter up to {max_entries} times daily through {end_date}. More entries mean more chances to win.",
		"Entries are open until {end_date}, with up to {max_entries} entries allowed each day. No purchase is necessary.",
	}

	longClosings = []string{
		"Do not let this one pass you by. Enter today and keep coming back until the giveaway closes.",
		"The clock is running until {end_date}. Enter now and make it part of your daily routine.",
		"{prize} is waiting for a winner. Put your name in today and every day until the end.",
	}
)

const wouldYouDo = "What would you do with your winnings? Treat yourself to a night out, put it toward something for the house, tuck it away for later, or finally buy the thing you keep talking yourself out of. It is your call, and that is the fun part."

var imagePromptTemplates = []string{
	"Professional sweepstakes promotional image featuring %s. Clean modern design, bright celebratory colors, symbols of prizes and winning. High quality marketing photography, no text.",
	"Eye-catching giveaway hero banner for %s. Vibrant and inviting, confetti and reward imagery, polished advertising style, no text overlay.",
	"Premium contest header image built around %s. Bold colors, sense of excitement and celebration, high resolution promotional artwork, no text.",
	"Bright marketing visual for a %s sweepstakes. Modern composition, cheerful lighting, symbols of luck and rewards, no words in the image.",
}
