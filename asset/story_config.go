package asset

// DefaultStory is the embedded scene table, overridden by story.toml in the asset directory
const DefaultStory = `
title = "Deathtrip"
start = "start"

[characters]
Alex = "images/alex.png"
Mia = "images/mia.png"
You = ""

# === Act 1: the party ===

[[scenes]]
id = "start"
background = "images/party.jpg"
music = "sound/party.wav"
lines = [
    "It's Saturday night and the party at Mia's place is in full swing.",
    "Mia: You made it! Grab something from the kitchen.",
    "Alex: Here, I saved you one. Cheers!",
]

[scenes.decision]
prompt = "Alex hands you a beer."
choices = [
    { label = "Drink", target = "drink" },
    { label = "Don't drink", target = "no_drink" },
]

[[scenes]]
id = "drink"
background = "images/info.png"
info = true
next = "start"
lines = [
    "Wrong choice.",
    "Alcohol slows your reactions and clouds your judgement.",
    "Tonight someone needs a clear head. Try again.",
]

[[scenes]]
id = "no_drink"
background = "images/kitchen.jpg"
lines = [
    "You pour yourself a soda instead.",
    "Alex: Suit yourself. More for me.",
    "Hours pass. Alex has had a lot more than a few.",
    "Alex: Right, I'm heading home. The car's out front.",
    "He fishes the car keys out of his jacket.",
]

[scenes.decision]
prompt = "Alex is about to drive."
choices = [
    { label = "Try to stop him", target = "try_stop_A" },
    { label = "Let him drive", target = "let_drive" },
]

[[scenes]]
id = "let_drive"
background = "images/info.png"
info = true
next = "no_drink"
lines = [
    "Wrong choice.",
    "Even a few drinks double the risk of a crash.",
    "Friends don't let friends drive drunk. Go back and stop him.",
]

# === Act 2: the driveway ===

[[scenes]]
id = "try_stop_A"
background = "images/driveway.png"
lines = [
    "You: Alex, wait. You can't drive like this.",
    "Alex: Relax, it's five minutes. I'm fine.",
    "Mia: He won't listen. He's already unlocking the car.",
    "Alex: You coming or not? Hop in.",
]

[scenes.decision]
prompt = "Where do you go?"
choices = [
    { label = "Get in the passenger seat", target = "seat_A" },
    { label = "Stay and call a taxi", target = "seat_B" },
]

[[scenes]]
id = "seat_A"
background = "images/car.jpg"
next = "ending_bad"
lines = [
    "You climb into the passenger seat. Maybe you can keep him focused.",
    "Alex: See? Nothing to it.",
    "The road bends. Alex doesn't.",
]

[[scenes]]
id = "seat_B"
background = "images/driveway.png"
next = "ending_good"
lines = [
    "You reach through the window and pull the keys out of the ignition.",
    "Mia: I've got a taxi on the way. Ten minutes.",
    "Alex: ...Fine. Fine! You two are unbelievable.",
]

# === Endings ===

[[scenes]]
id = "ending_bad"
background = "images/ending_bad.png"
music = "sound/ending.wav"
ending = true
lines = [
    "The car never made it home.",
    "Drunk driving takes lives every single day.",
]

[[scenes]]
id = "ending_good"
background = "images/ending_good.png"
music = "sound/ending.wav"
ending = true
lines = [
    "The taxi pulls up ten minutes later.",
    "Alex: Thanks. I mean it.",
    "Everyone got home safe tonight.",
]
`
