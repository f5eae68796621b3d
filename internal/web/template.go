package web

import (
	"html/template"
	"io"
	"log"

	"github.com/sweeney/lampctl/internal/control"
)

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0, user-scalable=no">
<title>Lamp Controller</title>
<style>
body{font-family:Arial,sans-serif;color:#444;text-align:center;margin:0;padding:0 10px;}
.title{font-size:28px;font-weight:bold;letter-spacing:2px;margin:40px 0 20px;}
.led-control{display:flex;align-items:center;justify-content:center;margin:20px 0;gap:20px;}
.led-label{font-size:20px;width:80px;text-align:left;padding-left:10px;}
.toggle-switch{width:120px;height:60px;position:relative;}
.slider{position:absolute;width:120px;height:60px;background-color:#f1f1f1;transition:.4s;border-radius:60px;border:1px solid #ddd;}
.slider:before{content:'';position:absolute;height:52px;width:52px;left:4px;top:4px;background-color:white;transition:.4s;border-radius:50%;box-shadow:0 2px 5px rgba(0,0,0,.3);}
.slider.on{background-color:#4285f4;border:none;}.slider.on:before{transform:translateX(60px);}
a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;}
.section{margin-top:30px;padding-bottom:20px;border-bottom:1px solid #eee;}
.section-title{font-size:20px;margin-bottom:12px;}
.input-time{font-size:18px;padding:8px 10px;border-radius:8px;border:1px solid #ccc;margin:6px 0;}
.btn{margin-top:10px;padding:10px 16px;font-size:16px;background-color:#4285f4;border:none;color:white;border-radius:10px;cursor:pointer;}
.btn.red{background-color:#e53935;}
.timer-input{width:70px;font-size:18px;padding:8px;border:1px solid #ccc;border-radius:8px;margin:6px;}
.alarm-item{margin:6px 0;display:flex;gap:8px;align-items:center;justify-content:center;}
.alarm-item input{font-size:18px;padding:6px;border-radius:8px;border:1px solid #ccc;}
.small-btn{padding:6px 8px;font-size:14px;border-radius:8px;border:none;background:#777;color:white;cursor:pointer;}
</style>
</head>
<body>
<h1 class="title">LAMP CONTROLLER</h1>

<div class="led-control"><span class="led-label">LED 1</span><div class="toggle-switch">
{{if .Lamp1}}<a href="/led1off"><div class="slider on"></div></a>{{else}}<a href="/led1on"><div class="slider"></div></a>{{end}}
</div></div>

<div class="led-control"><span class="led-label">LED 2</span><div class="toggle-switch">
{{if .Lamp2}}<a href="/led2off"><div class="slider on"></div></a>{{else}}<a href="/led2on"><div class="slider"></div></a>{{end}}
</div></div>

<div class="section"><div class="section-title">Alarms</div>
<form id="alarmsForm" action="/setAlarms" method="GET">
<div id="alarmList">
{{range $i, $a := .Alarms}}<div class="alarm-item"><input type="time" name="alarm{{$i}}" value="{{$a}}" required>
<button type="button" class="small-btn" onclick="removeAlarm({{$i}})">Delete</button></div>
{{end}}{{if not .Alarms}}<div class="alarm-item"><input type="time" name="alarm0" class="input-time" required></div>{{end}}
</div>
<button type="button" class="btn" onclick="addAlarm()">Add Alarm</button> &nbsp;
<button type="submit" class="btn">Save Alarms</button> &nbsp;
<button type="button" class="btn red" onclick="clearAlarms()">Clear All</button>
</form></div>

<div class="section"><div class="section-title">Timer (rings buzzer)</div>
<form action="/startTimer" method="GET">
<input type="number" name="hours" class="timer-input" placeholder="HH" min="0" max="23">
<input type="number" name="minutes" class="timer-input" placeholder="MM" min="0" max="59">
<input type="number" name="seconds" class="timer-input" placeholder="SS" min="0" max="59"><br>
<button type="submit" class="btn">Start Timer</button></form>
<form action="/stopTimer" method="GET" style="margin-top:8px;"><button type="submit" class="btn red">Stop Timer</button></form>

<div style="margin-top:16px;font-size:16px;" id="statusArea"></div>
</div>

<script>
function addAlarm(){var list=document.getElementById('alarmList');var idx=list.children.length;var div=document.createElement('div');div.className='alarm-item';var input=document.createElement('input');input.type='time';input.name='alarm'+idx;input.required=true;var btn=document.createElement('button');btn.type='button';btn.className='small-btn';btn.innerText='Delete';btn.onclick=function(){div.remove();renumberAlarms();};div.appendChild(input);div.appendChild(btn);list.appendChild(div);}
function renumberAlarms(){var list=document.getElementById('alarmList');for(var i=0;i<list.children.length;i++){var inp=list.children[i].querySelector('input');if(inp) inp.name='alarm'+i;var btn=list.children[i].querySelector('button');if(btn) btn.setAttribute('onclick','removeAlarm('+i+')');}}
function removeAlarm(i){var list=document.getElementById('alarmList');if(list.children[i]) list.children[i].remove();renumberAlarms();}
function clearAlarms(){fetch('/clearAlarms').then(()=>location.reload());}
function fetchStatus(){fetch('/status').then(r=>r.json()).then(j=>{var s=document.getElementById('statusArea');var txt='';txt+='Timer: '+(j.timerRunning?('running, remaining: '+j.remaining):'stopped')+'<br>';txt+='Alarms stored: '+j.alarmsCount+'<br>';txt+='LED1: '+(j.led1?'ON':'OFF')+' | LED2: '+(j.led2?'ON':'OFF')+'<br>';s.innerHTML=txt;}).catch(e=>{});} setInterval(fetchStatus,2000);fetchStatus();
</script>

</body>
</html>
`

func renderHTML(w io.Writer, snap control.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render index: %v", err)
	}
}
